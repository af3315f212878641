package controller

import "net/http"

const participantCookie = "chaospizza_participant"

// rememberParticipant stores the participant's name in a session cookie so
// their next add-item form can be prefilled.
func rememberParticipant(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     participantCookie,
		Value:    name,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func rememberedParticipant(r *http.Request) string {
	cookie, err := r.Cookie(participantCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

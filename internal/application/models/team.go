package models

import id "devportal/pkg/domain"

// Team is owned by the team directory; applications only reference it.
type Team struct {
	ID   id.TeamID `json:"id"`
	Name string    `json:"name"`
}

package dto

import "linkup/models"

// UserDTO is the identity projection returned to clients. It never carries
// the password hash; follower and following sets are flattened to id lists.
type UserDTO struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Username  string   `json:"userName"`
	Email     string   `json:"email"`
	Photo     string   `json:"photo"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
	Token     string   `json:"token,omitempty"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		Photo:     user.Photo,
		Followers: userIDs(user.Followers),
		Following: userIDs(user.Following),
	}
}

func userIDs(users []*models.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

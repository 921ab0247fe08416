package dto

import "linkup/models"

// PostDTO is the post projection returned to clients, with likes flattened
// to a list of user ids.
type PostDTO struct {
	ID       string   `json:"_id"`
	Body     string   `json:"body"`
	Photo    string   `json:"photo,omitempty"`
	Video    string   `json:"video,omitempty"`
	Likes    []string `json:"likes"`
	PostedBy string   `json:"postedBy"`
}

func NewPostDTO(post *models.Post) PostDTO {
	return PostDTO{
		ID:       post.ID,
		Body:     post.Body,
		Photo:    post.Photo,
		Video:    post.Video,
		Likes:    userIDs(post.Likes),
		PostedBy: post.AuthorID,
	}
}

func NewPostDTOs(posts []models.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = NewPostDTO(&posts[i])
	}
	return dtos
}

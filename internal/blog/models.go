package blog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BlogTitle   string             `bson:"blogTitle" json:"blogTitle"`
	TypeOfBlog  string             `bson:"typeOfBlog,omitempty" json:"typeOfBlog,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Photo       []string           `bson:"photo" json:"photo"`
	Documents   []string           `bson:"documents" json:"documents"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreateBlogRequest struct {
	BlogTitle   string `json:"blogTitle" form:"blogTitle"`
	TypeOfBlog  string `json:"typeOfBlog" form:"typeOfBlog"`
	Location    string `json:"location" form:"location"`
	Description string `json:"description" form:"description"`
	Duration    string `json:"duration" form:"duration"`
}

type UpdateBlogRequest struct {
	BlogTitle   *string `json:"blogTitle"`
	TypeOfBlog  *string `json:"typeOfBlog"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
}

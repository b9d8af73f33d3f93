package graph

import (
	"strconv"
	"time"

	"quill/internal/models"

	"github.com/graphql-go/graphql"
)

// View structs are the wire shapes the schema serves. Field resolution goes
// through the default resolver, which matches on these json tags, so they
// are the single place the external field names live.

type userView struct {
	ID     string     `json:"_id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Status string     `json:"status"`
	Posts  []postView `json:"posts"`
}

type postView struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Creator   *userView `json:"creator"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type authView struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type postPageView struct {
	Posts     []postView `json:"posts"`
	TotalPost int64      `json:"totalPost"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// newUserView converts a stored user. The password hash is deliberately not
// part of the view. Posts carried by the user come back with a shallow
// creator reference so the conversion never cycles.
func newUserView(u *models.User) *userView {
	v := &userView{
		ID:     formatID(u.ID),
		Email:  u.Email,
		Name:   u.Name,
		Status: u.Status,
	}
	for i := range u.Posts {
		p := newPostView(&u.Posts[i])
		p.Creator = &userView{ID: v.ID, Email: v.Email, Name: v.Name, Status: v.Status}
		v.Posts = append(v.Posts, *p)
	}
	return v
}

func newPostView(p *models.Post) *postView {
	v := &postView{
		ID:        formatID(p.ID),
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
	if p.Creator.ID != 0 {
		v.Creator = newUserView(&p.Creator)
	}
	return v
}

// GraphQL type definitions. userType and postType reference each other, so
// the cyclic fields are attached after both exist.

var postType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Post",
	Fields: graphql.Fields{
		"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"_id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authDataType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthData",
	Fields: graphql.Fields{
		"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var postDataType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PostData",
	Fields: graphql.Fields{
		"posts":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType)))},
		"totalPost": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var userInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserInputData",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var postInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PostInputData",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

// postUpdateInputType leaves imageUrl nullable: an absent value means "keep
// the stored path", a present one overwrites it.
var postUpdateInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PostUpdateData",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

func init() {
	postType.AddFieldConfig("creator", &graphql.Field{Type: graphql.NewNonNull(userType)})
	userType.AddFieldConfig("posts", &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(postType))})
}

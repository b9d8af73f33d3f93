// Package graph exposes the application's use cases as a single GraphQL
// schema. Resolvers read the request's viewer from the context and delegate
// everything else to the service layer.
package graph

import (
	"context"
	"fmt"
	"strconv"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/graphql-go/graphql"
)

// Request is one GraphQL call as posted by a client.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Schema binds the compiled GraphQL schema to the services it resolves
// against.
type Schema struct {
	users    *service.UserService
	posts    *service.PostService
	compiled graphql.Schema
}

// NewSchema compiles the schema over the given services.
func NewSchema(users *service.UserService, posts *service.PostService) (*Schema, error) {
	s := &Schema{users: users, posts: posts}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveLogin,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(postDataType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: s.resolvePosts,
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolvePost,
			},
			"user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: s.resolveUser,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: s.resolveCreateUser,
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: s.resolveCreatePost,
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postUpdateInputType)},
				},
				Resolve: s.resolveUpdatePost,
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveDeletePost,
			},
			"updateStatus": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveUpdateStatus,
			},
		},
	})

	compiled, err := graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	s.compiled = compiled
	return s, nil
}

// Execute runs one request against the schema and returns the wire-ready
// response envelope.
func (s *Schema) Execute(ctx context.Context, req Request) *Response {
	result := graphql.Do(graphql.Params{
		Schema:         s.compiled,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	return newResponse(result)
}

func (s *Schema) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	res, err := s.users.Login(p.Context, stringArg(p.Args, "email"), stringArg(p.Args, "password"))
	if err != nil {
		return nil, err
	}
	return &authView{Token: res.Token, UserID: formatID(res.UserID)}, nil
}

func (s *Schema) resolvePosts(p graphql.ResolveParams) (interface{}, error) {
	page, _ := p.Args["page"].(int)
	result, err := s.posts.List(p.Context, auth.ViewerFrom(p.Context), page)
	if err != nil {
		return nil, err
	}

	view := &postPageView{Posts: []postView{}, TotalPost: result.Total}
	for i := range result.Posts {
		view.Posts = append(view.Posts, *newPostView(&result.Posts[i]))
	}
	return view, nil
}

func (s *Schema) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	id, err := postIDArg(p.Args)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.Get(p.Context, auth.ViewerFrom(p.Context), id)
	if err != nil {
		return nil, err
	}
	return newPostView(post), nil
}

func (s *Schema) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	user, err := s.users.CurrentUser(p.Context, auth.ViewerFrom(p.Context))
	if err != nil {
		return nil, err
	}
	return newUserView(user), nil
}

func (s *Schema) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	in, err := inputArg(p.Args, "userInput")
	if err != nil {
		return nil, err
	}
	user, err := s.users.Register(p.Context, service.RegisterInput{
		Email:    stringArg(in, "email"),
		Name:     stringArg(in, "name"),
		Password: stringArg(in, "password"),
	})
	if err != nil {
		return nil, err
	}
	return newUserView(user), nil
}

func (s *Schema) resolveCreatePost(p graphql.ResolveParams) (interface{}, error) {
	in, err := inputArg(p.Args, "postInput")
	if err != nil {
		return nil, err
	}
	post, err := s.posts.Create(p.Context, auth.ViewerFrom(p.Context), service.CreatePostInput{
		Title:    stringArg(in, "title"),
		Content:  stringArg(in, "content"),
		ImageURL: stringArg(in, "imageUrl"),
	})
	if err != nil {
		return nil, err
	}
	return newPostView(post), nil
}

func (s *Schema) resolveUpdatePost(p graphql.ResolveParams) (interface{}, error) {
	id, err := postIDArg(p.Args)
	if err != nil {
		return nil, err
	}
	in, err := inputArg(p.Args, "postInput")
	if err != nil {
		return nil, err
	}

	input := service.UpdatePostInput{
		PostID:  id,
		Title:   stringArg(in, "title"),
		Content: stringArg(in, "content"),
	}
	if raw, ok := in["imageUrl"].(string); ok {
		input.ImageURL = &raw
	}

	post, err := s.posts.Update(p.Context, auth.ViewerFrom(p.Context), input)
	if err != nil {
		return nil, err
	}
	return newPostView(post), nil
}

func (s *Schema) resolveDeletePost(p graphql.ResolveParams) (interface{}, error) {
	id, err := postIDArg(p.Args)
	if err != nil {
		return nil, err
	}
	return s.posts.Delete(p.Context, auth.ViewerFrom(p.Context), id)
}

func (s *Schema) resolveUpdateStatus(p graphql.ResolveParams) (interface{}, error) {
	user, err := s.users.UpdateStatus(p.Context, auth.ViewerFrom(p.Context), stringArg(p.Args, "status"))
	if err != nil {
		return nil, err
	}
	return newUserView(user), nil
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func inputArg(args map[string]interface{}, key string) (map[string]interface{}, error) {
	in, ok := args[key].(map[string]interface{})
	if !ok {
		return nil, models.NewValidationError("Invalid input")
	}
	return in, nil
}

// postIDArg parses the id argument. IDs arrive as strings per GraphQL's ID
// coercion; anything that is not a stored numeric id reads as a missing post.
func postIDArg(args map[string]interface{}) (uint, error) {
	raw := fmt.Sprintf("%v", args["id"])
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("Post")
	}
	return uint(id), nil
}

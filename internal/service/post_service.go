package service

import (
	"context"
	"errors"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

// PostsPerPage is the fixed feed page size.
const PostsPerPage = 2

// PostService implements the post CRUD use cases.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	// clearImage removes a stored media file, best-effort. Failures must
	// never abort the surrounding use case.
	clearImage func(path string)
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
}

// UpdatePostInput is the payload for updating a post. A nil ImageURL means
// "leave the stored value unchanged"; a non-nil one overwrites it.
type UpdatePostInput struct {
	PostID   uint
	Title    string
	Content  string
	ImageURL *string
}

// PostPage is one page of the feed plus the unfiltered total for pagination.
type PostPage struct {
	Posts []models.Post
	Total int64
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, clearImage func(path string)) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, clearImage: clearImage}
}

// Create validates input (accumulating every violation) and persists a post
// owned by the viewer.
func (s *PostService) Create(ctx context.Context, viewer auth.Viewer, in CreatePostInput) (*models.Post, error) {
	if err := requireAuth(viewer); err != nil {
		return nil, err
	}

	if errs := validation.ValidatePostInput(in.Title, in.Content); len(errs) > 0 {
		return nil, models.NewValidationError("Invalid input", errs...)
	}

	creator, err := s.userRepo.GetByID(ctx, viewer.UserID)
	if err != nil {
		// A token for a vanished account is an authentication problem,
		// not a plain missing resource. Anything else (store outage,
		// cache failure) keeps its own classification.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewUnauthenticatedError("User not found!")
		}
		return nil, err
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		CreatorID: creator.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read so the creator comes back resolved.
	return s.postRepo.GetByID(ctx, post.ID)
}

// Get returns a single post with its creator resolved.
func (s *PostService) Get(ctx context.Context, viewer auth.Viewer, id uint) (*models.Post, error) {
	if err := requireAuth(viewer); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id)
}

// List returns the requested feed page, newest first, plus the total count.
// Page defaults to 1 when absent or not positive.
func (s *PostService) List(ctx context.Context, viewer auth.Viewer, page int) (*PostPage, error) {
	if err := requireAuth(viewer); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, PostsPerPage, (page-1)*PostsPerPage)
	if err != nil {
		return nil, err
	}

	return &PostPage{Posts: posts, Total: total}, nil
}

// Update overwrites title and content of the viewer's own post. The image URL
// changes only when the input actually carries one.
func (s *PostService) Update(ctx context.Context, viewer auth.Viewer, in UpdatePostInput) (*models.Post, error) {
	if err := requireAuth(viewer); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(viewer, post.CreatorID); err != nil {
		return nil, err
	}

	if errs := validation.ValidatePostInput(in.Title, in.Content); len(errs) > 0 {
		return nil, models.NewValidationError("Invalid input", errs...)
	}

	post.Title = in.Title
	post.Content = in.Content
	if in.ImageURL != nil {
		// Replaced files are cleaned up by the upload endpoint via oldPath,
		// not here.
		post.ImageURL = *in.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the viewer's own post and its stored media file. File cleanup
// is best-effort and never blocks the record deletion.
func (s *PostService) Delete(ctx context.Context, viewer auth.Viewer, id uint) (bool, error) {
	if err := requireAuth(viewer); err != nil {
		return false, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := requireOwner(viewer, post.CreatorID); err != nil {
		return false, err
	}

	if post.ImageURL != "" && s.clearImage != nil {
		s.clearImage(post.ImageURL)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

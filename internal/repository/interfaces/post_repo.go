package interfaces

import "github.com/rahulbedjavalge/Unfiltered-Club/internal/model"

// PostRepository 定义了帖子、评论和反应的数据库操作接口
type PostRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id int) (*model.Post, error)
	ListPosts(limit int) ([]*model.Post, error)
	ListAllPosts() ([]*model.Post, error)

	CreateComment(comment *model.Comment) error
	GetCommentsByPostID(postID int) ([]*model.Comment, error)
	CountComments() (int, error)

	CreateReaction(reaction *model.Reaction) error
	GetReaction(postID int, userID string) (*model.Reaction, error)
	UpdateReactionEmoji(id int, emoji string) error
	GetReactionsByPostID(postID int) ([]*model.Reaction, error)
	CountReactions() (int, error)

	DeleteAllReactions() error
	DeleteAllComments() error
	DeleteAllPosts() error
}

package mysql

import (
	"database/sql"

	"github.com/rahulbedjavalge/Unfiltered-Club/internal/model"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/util"

	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(post *model.Post) error {
	query := `INSERT INTO posts (content, mood, user_id, created_at)
              VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, post.Content, post.Mood, post.UserID)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	postID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	post.ID = int(postID)

	// 帖子时间戳由数据库赋值，回读一次用于响应
	err = r.db.QueryRow(`SELECT created_at FROM posts WHERE id = ?`, post.ID).Scan(&post.CreatedAt)
	if err != nil {
		util.Logger.Error("回读帖子创建时间失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID), zap.String("mood", post.Mood))
	return nil
}

func (r *postRepository) GetPostByID(id int) (*model.Post, error) {
	query := `SELECT id, content, mood, user_id, created_at
              FROM posts
              WHERE id = ?`

	var post model.Post
	err := r.db.QueryRow(query, id).Scan(
		&post.ID, &post.Content, &post.Mood, &post.UserID, &post.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) ListPosts(limit int) ([]*model.Post, error) {
	query := `SELECT id, content, mood, user_id, created_at
              FROM posts
              ORDER BY created_at DESC
              LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		util.Logger.Error("获取帖子列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) ListAllPosts() ([]*model.Post, error) {
	query := `SELECT id, content, mood, user_id, created_at
              FROM posts
              ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID, &post.Content, &post.Mood, &post.UserID, &post.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

func (r *postRepository) CreateComment(comment *model.Comment) error {
	query := `INSERT INTO comments (post_id, content, user_id, created_at)
              VALUES (?, ?, ?, NOW())`

	result, err := r.db.Exec(query, comment.PostID, comment.Content, comment.UserID)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.Int("post_id", comment.PostID))
		return err
	}

	commentID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = int(commentID)

	err = r.db.QueryRow(`SELECT created_at FROM comments WHERE id = ?`, comment.ID).Scan(&comment.CreatedAt)
	if err != nil {
		util.Logger.Error("回读评论创建时间失败", zap.Error(err), zap.Int("comment_id", comment.ID))
		return err
	}

	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID), zap.Int("post_id", comment.PostID))
	return nil
}

func (r *postRepository) GetCommentsByPostID(postID int) ([]*model.Comment, error) {
	query := `SELECT id, post_id, content, user_id, created_at
              FROM comments
              WHERE post_id = ?
              ORDER BY created_at ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		util.Logger.Error("获取评论列表失败", zap.Error(err), zap.Int("post_id", postID))
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.Content,
			&comment.UserID, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func (r *postRepository) CountComments() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&count)
	return count, err
}

func (r *postRepository) CreateReaction(reaction *model.Reaction) error {
	query := `INSERT INTO reactions (post_id, emoji, user_id) VALUES (?, ?, ?)`

	result, err := r.db.Exec(query, reaction.PostID, reaction.Emoji, reaction.UserID)
	if err != nil {
		util.Logger.Error("创建反应失败", zap.Error(err), zap.Int("post_id", reaction.PostID))
		return err
	}

	reactionID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reaction.ID = int(reactionID)
	return nil
}

func (r *postRepository) GetReaction(postID int, userID string) (*model.Reaction, error) {
	query := `SELECT id, post_id, emoji, user_id
              FROM reactions
              WHERE post_id = ? AND user_id = ?`

	var reaction model.Reaction
	err := r.db.QueryRow(query, postID, userID).Scan(
		&reaction.ID, &reaction.PostID, &reaction.Emoji, &reaction.UserID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &reaction, nil
}

func (r *postRepository) UpdateReactionEmoji(id int, emoji string) error {
	query := `UPDATE reactions SET emoji = ? WHERE id = ?`
	_, err := r.db.Exec(query, emoji, id)
	if err != nil {
		util.Logger.Error("更新反应表情失败", zap.Error(err), zap.Int("reaction_id", id))
		return err
	}
	return nil
}

func (r *postRepository) GetReactionsByPostID(postID int) ([]*model.Reaction, error) {
	query := `SELECT id, post_id, emoji, user_id
              FROM reactions
              WHERE post_id = ?`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []*model.Reaction
	for rows.Next() {
		var reaction model.Reaction
		err := rows.Scan(&reaction.ID, &reaction.PostID, &reaction.Emoji, &reaction.UserID)
		if err != nil {
			return nil, err
		}
		reactions = append(reactions, &reaction)
	}
	return reactions, rows.Err()
}

func (r *postRepository) CountReactions() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM reactions`).Scan(&count)
	return count, err
}

func (r *postRepository) DeleteAllReactions() error {
	_, err := r.db.Exec(`DELETE FROM reactions`)
	if err != nil {
		util.Logger.Error("清空反应表失败", zap.Error(err))
	}
	return err
}

func (r *postRepository) DeleteAllComments() error {
	_, err := r.db.Exec(`DELETE FROM comments`)
	if err != nil {
		util.Logger.Error("清空评论表失败", zap.Error(err))
	}
	return err
}

func (r *postRepository) DeleteAllPosts() error {
	_, err := r.db.Exec(`DELETE FROM posts`)
	if err != nil {
		util.Logger.Error("清空帖子表失败", zap.Error(err))
	}
	return err
}

package service

import (
	"fmt"

	"github.com/rahulbedjavalge/Unfiltered-Club/internal/model"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/repository/interfaces"

	"github.com/google/uuid"
)

// DefaultFeedLimit 是信息流的默认条数
const DefaultFeedLimit = 50

// PostService 是帖子、评论和反应的持久化网关
type PostService struct {
	repo interfaces.PostRepository
}

func NewPostService(repo interfaces.PostRepository) *PostService {
	return &PostService{repo}
}

func (s *PostService) CreatePost(content, mood string, userID *string) (*model.Post, error) {
	post := &model.Post{
		Content: content,
		Mood:    mood,
		UserID:  userID,
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPostByID(id int) (*model.Post, error) {
	return s.repo.GetPostByID(id)
}

// ListPosts 返回最新在前的帖子列表
func (s *PostService) ListPosts(limit int) ([]*model.Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.ListPosts(limit)
}

// CreateComment 创建一条评论，作者默认为匿名标记
// 机器人标记入库前替换成一次性的随机ID，机器人没有固定身份
func (s *PostService) CreateComment(postID int, content, userID string) (*model.Comment, error) {
	if userID == "" {
		userID = model.AnonUserID
	}
	if userID == model.BotUserID {
		userID = uuid.New().String()
	}

	comment := &model.Comment{
		PostID:  postID,
		Content: content,
		UserID:  userID,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments 返回指定帖子下最旧在前的评论列表
func (s *PostService) ListComments(postID int) ([]*model.Comment, error) {
	return s.repo.GetCommentsByPostID(postID)
}

// UpsertReaction 记录一个表情反应，同一 (帖子, 作者) 只保留一行
// 先读后写存在并发窗口，最坏情况是同一作者并发反应时丢失一次表情更新，可接受
func (s *PostService) UpsertReaction(postID int, emoji, userID string) (*model.Reaction, error) {
	if userID == "" {
		userID = model.AnonUserID
	}

	existing, err := s.repo.GetReaction(postID, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.repo.UpdateReactionEmoji(existing.ID, emoji); err != nil {
			return nil, err
		}
		existing.Emoji = emoji
		return existing, nil
	}

	reaction := &model.Reaction{
		PostID: postID,
		Emoji:  emoji,
		UserID: userID,
	}
	if err := s.repo.CreateReaction(reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}

func (s *PostService) GetReactions(postID int) ([]*model.Reaction, error) {
	return s.repo.GetReactionsByPostID(postID)
}

// CountReactions 按表情聚合指定帖子的反应计数
func (s *PostService) CountReactions(postID int) ([]*model.ReactionCount, error) {
	reactions, err := s.repo.GetReactionsByPostID(postID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, reaction := range reactions {
		if _, seen := counts[reaction.Emoji]; !seen {
			order = append(order, reaction.Emoji)
		}
		counts[reaction.Emoji]++
	}

	result := make([]*model.ReactionCount, 0, len(order))
	for _, emoji := range order {
		result = append(result, &model.ReactionCount{Emoji: emoji, Count: counts[emoji]})
	}
	return result, nil
}

// DeleteAll 按 反应→评论→帖子 的顺序清空所有数据（先子后父）
// 非事务操作，中途失败时如实报告已进行到哪一步，不做回滚
func (s *PostService) DeleteAll() (bool, string) {
	if err := s.repo.DeleteAllReactions(); err != nil {
		return false, fmt.Sprintf("Error deleting data: failed at reactions: %v", err)
	}
	if err := s.repo.DeleteAllComments(); err != nil {
		return false, fmt.Sprintf("Error deleting data: reactions cleared, failed at comments: %v", err)
	}
	if err := s.repo.DeleteAllPosts(); err != nil {
		return false, fmt.Sprintf("Error deleting data: reactions and comments cleared, failed at posts: %v", err)
	}
	return true, "All data deleted successfully"
}

// GetStats 汇总全站统计，心情去重在应用侧计算
func (s *PostService) GetStats() (*model.Stats, error) {
	posts, err := s.repo.ListAllPosts()
	if err != nil {
		return nil, err
	}

	moods := make(map[string]struct{})
	for _, post := range posts {
		moods[post.Mood] = struct{}{}
	}

	commentCount, err := s.repo.CountComments()
	if err != nil {
		return nil, err
	}

	reactionCount, err := s.repo.CountReactions()
	if err != nil {
		return nil, err
	}

	return &model.Stats{
		PostCount:       len(posts),
		CommentCount:    commentCount,
		ReactionCount:   reactionCount,
		UniqueMoodCount: len(moods),
	}, nil
}

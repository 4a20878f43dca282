package service

import (
	"errors"
	"testing"

	"github.com/rahulbedjavalge/Unfiltered-Club/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(id int) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(limit int) ([]*model.Post, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListAllPosts() ([]*model.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockPostRepository) GetCommentsByPostID(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockPostRepository) CountComments() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) CreateReaction(reaction *model.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockPostRepository) GetReaction(postID int, userID string) (*model.Reaction, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reaction), args.Error(1)
}

func (m *MockPostRepository) UpdateReactionEmoji(id int, emoji string) error {
	args := m.Called(id, emoji)
	return args.Error(0)
}

func (m *MockPostRepository) GetReactionsByPostID(postID int) ([]*model.Reaction, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reaction), args.Error(1)
}

func (m *MockPostRepository) CountReactions() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) DeleteAllReactions() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPostRepository) DeleteAllComments() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPostRepository) DeleteAllPosts() error {
	args := m.Called()
	return args.Error(0)
}

// TestCreateCommentBotAuthor 测试机器人标记被替换成一次性的随机ID
func TestCreateCommentBotAuthor(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	var stored *model.Comment
	mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.Comment)
		}).Return(nil)

	comment, err := service.CreateComment(1, "🤖 AI (funny): nice one", model.BotUserID)
	assert.NoError(t, err)
	assert.NotNil(t, comment)

	// 入库的作者不再是机器人标记，而是一个合法的随机 UUID
	assert.NotEqual(t, model.BotUserID, stored.UserID)
	_, parseErr := uuid.Parse(stored.UserID)
	assert.NoError(t, parseErr)

	mockRepo.AssertExpectations(t)
}

// TestCreateCommentDefaultAnon 测试空作者默认为匿名标记
func TestCreateCommentDefaultAnon(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	var stored *model.Comment
	mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.Comment)
		}).Return(nil)

	_, err := service.CreateComment(1, "felt that", "")
	assert.NoError(t, err)
	assert.Equal(t, model.AnonUserID, stored.UserID)
}

// TestUpsertReactionInsert 测试首次反应插入新行
func TestUpsertReactionInsert(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	mockRepo.On("GetReaction", 5, "anon").Return(nil, nil)
	mockRepo.On("CreateReaction", mock.AnythingOfType("*model.Reaction")).Return(nil)

	reaction, err := service.UpsertReaction(5, "❤️", "")
	assert.NoError(t, err)
	assert.Equal(t, "❤️", reaction.Emoji)
	assert.Equal(t, "anon", reaction.UserID)

	mockRepo.AssertExpectations(t)
}

// TestUpsertReactionUpdate 测试同一作者再次反应时原地更新表情而不是新增行
func TestUpsertReactionUpdate(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	existing := &model.Reaction{ID: 7, PostID: 5, Emoji: "❤️", UserID: "anon"}
	mockRepo.On("GetReaction", 5, "anon").Return(existing, nil)
	mockRepo.On("UpdateReactionEmoji", 7, "🔥").Return(nil)

	reaction, err := service.UpsertReaction(5, "🔥", "anon")
	assert.NoError(t, err)
	assert.Equal(t, 7, reaction.ID)
	assert.Equal(t, "🔥", reaction.Emoji)

	mockRepo.AssertNotCalled(t, "CreateReaction", mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestDeleteAllSuccess 测试按先子后父的顺序清空全部数据
func TestDeleteAllSuccess(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	mockRepo.On("DeleteAllReactions").Return(nil)
	mockRepo.On("DeleteAllComments").Return(nil)
	mockRepo.On("DeleteAllPosts").Return(nil)

	ok, msg := service.DeleteAll()
	assert.True(t, ok)
	assert.Equal(t, "All data deleted successfully", msg)
	mockRepo.AssertExpectations(t)
}

// TestDeleteAllPartialFailure 测试中途失败时如实报告进度且不再继续
func TestDeleteAllPartialFailure(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	mockRepo.On("DeleteAllReactions").Return(nil)
	mockRepo.On("DeleteAllComments").Return(errors.New("connection lost"))

	ok, msg := service.DeleteAll()
	assert.False(t, ok)
	assert.Contains(t, msg, "failed at comments")
	assert.Contains(t, msg, "connection lost")

	// 评论删除失败后不应继续删除帖子
	mockRepo.AssertNotCalled(t, "DeleteAllPosts")
}

// TestGetStats 测试全站统计的聚合，心情去重在应用侧计算
func TestGetStats(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	posts := []*model.Post{
		{ID: 1, Mood: "happy"},
		{ID: 2, Mood: "happy"},
		{ID: 3, Mood: "sad"},
	}
	mockRepo.On("ListAllPosts").Return(posts, nil)
	mockRepo.On("CountComments").Return(4, nil)
	mockRepo.On("CountReactions").Return(5, nil)

	stats, err := service.GetStats()
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.PostCount)
	assert.Equal(t, 4, stats.CommentCount)
	assert.Equal(t, 5, stats.ReactionCount)
	assert.Equal(t, 2, stats.UniqueMoodCount)
}

// TestCountReactions 测试按表情聚合计数
func TestCountReactions(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	reactions := []*model.Reaction{
		{ID: 1, PostID: 9, Emoji: "❤️", UserID: "anon"},
		{ID: 2, PostID: 9, Emoji: "🔥", UserID: "a"},
		{ID: 3, PostID: 9, Emoji: "❤️", UserID: "b"},
	}
	mockRepo.On("GetReactionsByPostID", 9).Return(reactions, nil)

	counts, err := service.CountReactions(9)
	assert.NoError(t, err)
	assert.Len(t, counts, 2)
	assert.Equal(t, "❤️", counts[0].Emoji)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, "🔥", counts[1].Emoji)
	assert.Equal(t, 1, counts[1].Count)
}

// TestListPostsDefaultLimit 测试非法的条数回退到默认值
func TestListPostsDefaultLimit(t *testing.T) {
	mockRepo := new(MockPostRepository)
	service := NewPostService(mockRepo)

	mockRepo.On("ListPosts", DefaultFeedLimit).Return([]*model.Post{}, nil)

	_, err := service.ListPosts(0)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

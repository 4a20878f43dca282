package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rahulbedjavalge/Unfiltered-Club/internal/ai"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/model"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/moderation"

	"go.uber.org/zap"
)

// 完整提交流程自己的最短长度要求，比审核过滤的 3 字符下限更严格
const minSubmissionLength = 10

// SubmissionState 标记提交流程的终态
type SubmissionState string

const (
	// SubmissionDone 帖子和机器人评论都已入库
	SubmissionDone SubmissionState = "done"
	// SubmissionDoneCommentFailed 帖子已入库但机器人评论保存失败，降级成功
	SubmissionDoneCommentFailed SubmissionState = "done_comment_failed"
	// SubmissionRejected 校验或审核未通过，未产生任何副作用
	SubmissionRejected SubmissionState = "rejected"
	// SubmissionFailed 帖子入库失败
	SubmissionFailed SubmissionState = "failed"
)

// SubmissionInput 是一次发帖请求的全部输入，身份显式传入而不是来自会话状态
type SubmissionInput struct {
	Text      string
	Mood      string
	ReplyMode string
	UserID    *string
}

// SubmissionResult 是提交流程的终态结果
type SubmissionResult struct {
	State     SubmissionState
	Reason    string
	Post      *model.Post
	Reply     string
	ReplyMode string
}

// SubmissionService 编排完整的发帖流程：
// 校验 → 内容审核 → 生成AI回复 → 存帖子 → 存机器人评论
type SubmissionService struct {
	posts     *PostService
	moderate  moderation.Func
	generator ai.Generator
}

func NewSubmissionService(posts *PostService, moderate moderation.Func, generator ai.Generator) *SubmissionService {
	return &SubmissionService{
		posts:     posts,
		moderate:  moderate,
		generator: generator,
	}
}

// Submit 执行一次完整提交，所有失败都体现在结果里，不向调用方抛错
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) SubmissionResult {
	// 校验：心情必须是具体枚举值，不能是占位哨兵
	mood := strings.TrimSpace(input.Mood)
	if mood == model.MoodUnselected || !model.IsValidMood(mood) {
		return SubmissionResult{
			State:  SubmissionRejected,
			Reason: "Please pick a mood first",
		}
	}

	text := strings.TrimSpace(input.Text)
	if utf8.RuneCountInString(text) < minSubmissionLength {
		return SubmissionResult{
			State:  SubmissionRejected,
			Reason: fmt.Sprintf("Confession is too short (min %d characters)", minSubmissionLength),
		}
	}

	// 审核：未通过时立即终止，不请求回复也不落库
	ok, reason := s.moderate(input.Text)
	if !ok {
		return SubmissionResult{
			State:  SubmissionRejected,
			Reason: reason,
		}
	}

	mode := input.ReplyMode
	if !ai.IsValidMode(mode) {
		mode = ai.DefaultMode
	}

	// 回复无论后续落库是否成功都要生成，用户提交后要立刻看到
	reply := s.generator.GenerateReply(ctx, text, mode).Display()

	post, err := s.posts.CreatePost(text, mood, input.UserID)
	if err != nil || post == nil {
		zap.L().Error("帖子入库失败", zap.Error(err))
		return SubmissionResult{
			State:     SubmissionFailed,
			Reason:    "post creation failed",
			Reply:     reply,
			ReplyMode: mode,
		}
	}

	// 机器人评论携带回复风格和回复内容
	botContent := fmt.Sprintf("🤖 AI (%s): %s", mode, reply)
	if _, err := s.posts.CreateComment(post.ID, botContent, model.BotUserID); err != nil {
		// 帖子已经存在，评论失败按降级成功处理但要单独体现
		zap.L().Warn("机器人评论保存失败", zap.Error(err), zap.Int("post_id", post.ID))
		return SubmissionResult{
			State:     SubmissionDoneCommentFailed,
			Reason:    "AI comment could not be saved",
			Post:      post,
			Reply:     reply,
			ReplyMode: mode,
		}
	}

	return SubmissionResult{
		State:     SubmissionDone,
		Post:      post,
		Reply:     reply,
		ReplyMode: mode,
	}
}

package confession

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rahulbedjavalge/Unfiltered-Club/internal/ai"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/errors"
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConfessionHandler struct {
	postService       *service.PostService
	submissionService *service.SubmissionService
	generator         ai.Generator
}

func NewConfessionHandler(postService *service.PostService, submissionService *service.SubmissionService, generator ai.Generator) *ConfessionHandler {
	return &ConfessionHandler{
		postService:       postService,
		submissionService: submissionService,
		generator:         generator,
	}
}

type createConfessionRequest struct {
	Content   string  `json:"content" binding:"required"`
	Mood      string  `json:"mood" binding:"required,mood"`
	ReplyMode string  `json:"reply_mode"`
	UserID    *string `json:"user_id"`
}

// CreateConfession 处理完整的发帖流程：校验、审核、AI回复和落库都在编排服务里
func (h *ConfessionHandler) CreateConfession(c *gin.Context) {
	var req createConfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "Pick a mood and write something first!",
		})
		return
	}

	result := h.submissionService.Submit(c.Request.Context(), service.SubmissionInput{
		Text:      req.Content,
		Mood:      req.Mood,
		ReplyMode: req.ReplyMode,
		UserID:    req.UserID,
	})

	switch result.State {
	case service.SubmissionRejected:
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": result.Reason,
		})
	case service.SubmissionFailed:
		c.Error(errors.New(errors.ErrPostCreateFailed, result.Reason))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":     500,
			"message":  "Failed to post confession. Try again!",
			"ai_reply": result.Reply,
			"ai_mode":  result.ReplyMode,
		})
	case service.SubmissionDoneCommentFailed:
		c.Error(errors.New(errors.ErrCommentCreateFailed, result.Reason))
		c.JSON(http.StatusCreated, gin.H{
			"code":           201,
			"data":           result.Post,
			"ai_reply":       result.Reply,
			"ai_mode":        result.ReplyMode,
			"comment_stored": false,
			"warning":        result.Reason,
		})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"code":           201,
			"data":           result.Post,
			"ai_reply":       result.Reply,
			"ai_mode":        result.ReplyMode,
			"comment_stored": true,
		})
	}
}

// ListConfessions 返回最新在前的信息流
func (h *ConfessionHandler) ListConfessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	posts, err := h.postService.ListPosts(limit)
	if err != nil {
		appErr := errors.Wrap(errors.ErrDatabase, "Failed to load confessions", err)
		c.Error(appErr)
		errors.HandleError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": posts,
	})
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  string `json:"user_id"`
}

// CreateComment 在帖子下创建一条匿名评论
func (h *ConfessionHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Write something first!"})
		return
	}

	post, err := h.postService.GetPostByID(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "Failed to load confession", err))
		return
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "Confession not found"))
		return
	}

	comment, err := h.postService.CreateComment(postID, req.Content, req.UserID)
	if err != nil {
		appErr := errors.Wrap(errors.ErrCommentCreateFailed, "Failed to post comment", err)
		c.Error(appErr)
		errors.HandleError(c, appErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code": 201,
		"data": comment,
	})
}

// ListComments 返回帖子下最旧在前的评论列表
func (h *ConfessionHandler) ListComments(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	comments, err := h.postService.ListComments(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "Failed to load comments", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": comments,
	})
}

type createReactionRequest struct {
	Emoji  string `json:"emoji" binding:"required,reaction_emoji"`
	UserID string `json:"user_id"`
}

// CreateReaction 记录一个表情反应，同一作者重复反应时覆盖旧表情
func (h *ConfessionHandler) CreateReaction(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	var req createReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pick one of the reaction emojis"})
		return
	}

	post, err := h.postService.GetPostByID(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "Failed to load confession", err))
		return
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "Confession not found"))
		return
	}

	reaction, err := h.postService.UpsertReaction(postID, req.Emoji, req.UserID)
	if err != nil {
		appErr := errors.Wrap(errors.ErrReactionFailed, "Failed to save reaction", err)
		c.Error(appErr)
		errors.HandleError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": reaction,
	})
}

// ListReactions 返回帖子的全部反应和按表情聚合的计数
func (h *ConfessionHandler) ListReactions(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	reactions, err := h.postService.GetReactions(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "Failed to load reactions", err))
		return
	}

	counts, err := h.postService.CountReactions(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "Failed to load reactions", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": gin.H{
			"reactions": reactions,
			"counts":    counts,
		},
	})
}

type previewReplyRequest struct {
	Content string `json:"content" binding:"required"`
	Mode    string `json:"mode"`
}

// PreviewReply 只生成AI回复不发帖，对应侧边栏的预览按钮
func (h *ConfessionHandler) PreviewReply(c *gin.Context) {
	var req previewReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Write something first!"})
		return
	}

	mode := req.Mode
	if !ai.IsValidMode(mode) {
		mode = ai.DefaultMode
	}

	result := h.generator.GenerateReply(c.Request.Context(), strings.TrimSpace(req.Content), mode)

	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"reply": result.Display(),
		"mode":  mode,
	})
}

// GetStats 返回全站聚合统计
func (h *ConfessionHandler) GetStats(c *gin.Context) {
	stats, err := h.postService.GetStats()
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "Failed to load stats", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": stats,
	})
}

// GetEncouragement 返回一条随机鼓励语
func (h *ConfessionHandler) GetEncouragement(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": ai.RandomEncouragement(),
	})
}

// DeleteAllData 清空全部数据，部分失败时如实返回进度
func (h *ConfessionHandler) DeleteAllData(c *gin.Context) {
	zap.L().Warn("收到清空全部数据的请求", zap.String("client_ip", c.ClientIP()))

	ok, msg := h.postService.DeleteAll()
	if !ok {
		c.Error(errors.New(errors.ErrDataPurgeFailed, msg))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": msg,
	})
}

package model

import "time"

// BotUserID 是系统生成评论的特殊作者标记
// 入库前会被替换成一次性的随机ID，机器人没有固定身份
const BotUserID = "ai_bot"

// AnonUserID 是没有任何用户身份时的默认作者标记
const AnonUserID = "anon"

// Comment 表示帖子下的一条评论，作者是匿名用户或机器人
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

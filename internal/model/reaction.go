package model

// ReactionEmojis 是反应按钮允许的表情集合
var ReactionEmojis = []string{"❤️", "😂", "🤝", "🔥"}

// IsValidReactionEmoji 判断表情是否在允许集合内
func IsValidReactionEmoji(emoji string) bool {
	for _, e := range ReactionEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// Reaction 表示一个 (帖子, 作者) 对上的表情投票
// 同一作者再次反应时覆盖旧表情，不新增行
type Reaction struct {
	ID     int    `json:"id"`
	PostID int    `json:"post_id"`
	Emoji  string `json:"emoji"`
	UserID string `json:"user_id"`
}

// ReactionCount 表示单个表情的聚合计数
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Stats 表示全站聚合统计
type Stats struct {
	PostCount       int `json:"posts"`
	CommentCount    int `json:"comments"`
	ReactionCount   int `json:"reactions"`
	UniqueMoodCount int `json:"unique_moods"`
}

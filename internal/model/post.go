package model

import "time"

// MoodUnselected 是前端下拉框的占位哨兵值，不是合法的心情
const MoodUnselected = "unselected"

// Moods 是帖子允许的心情枚举
var Moods = []string{"sad", "angry", "meh", "lol", "happy", "confused"}

// IsValidMood 判断给定心情是否为合法枚举值
func IsValidMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// Post 表示一条匿名树洞帖子
type Post struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

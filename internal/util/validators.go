package util

import (
	"github.com/rahulbedjavalge/Unfiltered-Club/internal/model"

	"github.com/go-playground/validator/v10"
)

// ValidateMood 验证心情是否为合法枚举值（占位哨兵不算）
func ValidateMood(fl validator.FieldLevel) bool {
	mood, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return model.IsValidMood(mood)
}

// ValidateReactionEmoji 验证表情是否在允许集合内
func ValidateReactionEmoji(fl validator.FieldLevel) bool {
	emoji, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return model.IsValidReactionEmoji(emoji)
}

package ai

import "math/rand"

// 固定的鼓励语列表，侧边栏随机展示
var encouragements = []string{
	"🌟 You're braver than you think for sharing this!",
	"💫 Sometimes the best confessions come from the heart.",
	"🔥 Your authenticity is refreshing in this fake world.",
	"✨ Thank you for being real with us.",
	"🌈 Every confession is a step toward freedom.",
	"💎 Your vulnerability is your superpower.",
	"🚀 You're not alone in feeling this way.",
	"🌸 Healing happens when we speak our truth.",
}

// RandomEncouragement 返回一条随机鼓励语
func RandomEncouragement() string {
	return encouragements[rand.Intn(len(encouragements))]
}

package catalog

import "go.trai.ch/dock/internal/core/domain"

// Defaults returns the built-in desktop apps, keyed by display name.
func Defaults() []domain.App {
	return []domain.App{
		{
			Key:         "TikTok",
			ID:          "tiktok",
			Name:        "TikTok",
			DisplayName: "TikTok",
			Icon:        "🎵",
			Background:  "linear-gradient(45deg, #000, #333)",
			Category:    "social",
			URL:         domain.Ptr("https://www.tiktok.com"),
		},
		{
			Key:         "链接",
			ID:          "links",
			Name:        "Links",
			DisplayName: "链接",
			Icon:        "🔗",
			Background:  "linear-gradient(45deg, #ff4500, #ff8c00)",
			Category:    "utility",
		},
		{
			Key:         "记事",
			ID:          "notes",
			Name:        "Notes",
			DisplayName: "记事",
			Icon:        "📝",
			Background:  "linear-gradient(45deg, #ffa500, #ffb347)",
			Category:    "productivity",
		},
		{
			Key:            "小红书",
			ID:             "xiaohongshu",
			Name:           "Xiaohongshu",
			DisplayName:    "小红书",
			Icon:           "🔥",
			Background:     "linear-gradient(45deg, #ff1744, #ff6b6b)",
			Category:       "social",
			URL:            domain.Ptr("https://creator.xiaohongshu.com/login"),
			SpecialHandler: domain.HandlerXiaohongshuLogin,
		},
		{
			Key:         "哔哩哔哩",
			ID:          "bilibili",
			Name:        "Bilibili",
			DisplayName: "哔哩哔哩",
			Icon:        "📺",
			Background:  "linear-gradient(45deg, #ff69b4, #ff1493)",
			Category:    "entertainment",
			URL:         domain.Ptr("https://bilibili.com"),
		},
		{
			Key:         "同步",
			ID:          "sync",
			Name:        "Sync",
			DisplayName: "同步",
			Icon:        "🔄",
			Background:  "linear-gradient(45deg, #1e90ff, #87ceeb)",
			Category:    "utility",
		},
		{
			Key:         "头条",
			ID:          "toutiao",
			Name:        "Toutiao",
			DisplayName: "头条",
			Icon:        "📰",
			Background:  "linear-gradient(45deg, #dc143c, #ff6347)",
			Category:    "news",
			URL:         domain.Ptr("https://www.toutiao.com"),
		},
		{
			Key:         "微博",
			ID:          "weibo",
			Name:        "Weibo",
			DisplayName: "微博",
			Icon:        "👁️",
			Background:  "linear-gradient(45deg, #ff8c00, #ffd700)",
			Category:    "social",
			URL:         domain.Ptr("https://passport.weibo.com"),
		},
		{
			Key:         "知乎",
			ID:          "zhihu",
			Name:        "Zhihu",
			DisplayName: "知乎",
			Icon:        "💡",
			Background:  "linear-gradient(45deg, #4169e1, #87cefa)",
			Category:    "knowledge",
			URL:         domain.Ptr("https://www.zhihu.com"),
		},
		{
			Key:         "Snapchat",
			ID:          "snapchat",
			Name:        "Snapchat",
			DisplayName: "Snapchat",
			Icon:        "👻",
			Background:  "linear-gradient(45deg, #333, #666)",
			Category:    "social",
			URL:         domain.Ptr("https://www.snapchat.com"),
		},
	}
}

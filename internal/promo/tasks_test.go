package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform Platform
		want     bool
	}{
		{"facebook post", "https://www.facebook.com/user/posts/123", PlatformFacebook, true},
		{"facebook share link", "https://m.facebook.com/story.php?id=1", PlatformFacebook, true},
		{"instagram post", "https://www.instagram.com/p/abc123/", PlatformInstagram, true},
		{"plain http accepted", "http://facebook.com/x", PlatformFacebook, true},
		{"wrong platform", "https://www.instagram.com/p/abc/", PlatformFacebook, false},
		{"no scheme", "www.facebook.com/user/posts/123", PlatformFacebook, false},
		{"ftp scheme", "ftp://facebook.com/x", PlatformFacebook, false},
		{"not a url", "just some text", PlatformFacebook, false},
		{"empty", "", PlatformInstagram, false},
		{"unknown platform", "https://www.facebook.com/x", Platform("tiktok"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url, tt.platform))
		})
	}
}

func TestTaskTypePolicy(t *testing.T) {
	assert.True(t, TaskHandCheck.RequiresURL())
	assert.True(t, TaskVideoContent.RequiresURL())
	assert.True(t, TaskGroupShare.RequiresScreenshots())
	assert.True(t, TaskHypeComment.RequiresScreenshots())

	assert.Equal(t, 15, TaskHandCheck.FixedPoints())
	assert.Equal(t, 25, TaskVideoContent.FixedPoints())
	assert.Equal(t, 0, TaskGroupShare.FixedPoints())

	assert.False(t, TaskType("giveaway").Valid())
}

func TestSuggestedPoints(t *testing.T) {
	assert.Equal(t, 15, SuggestedPoints(TaskHandCheck, 0))
	assert.Equal(t, 25, SuggestedPoints(TaskVideoContent, 3))
	assert.Equal(t, 4, SuggestedPoints(TaskGroupShare, 4))
	assert.Equal(t, 1, SuggestedPoints(TaskHypeComment, 1))
}

func TestValidateIntake(t *testing.T) {
	screenshots := []string{"https://cdn.example.com/a.png"}

	tests := []struct {
		name        string
		taskType    TaskType
		platform    Platform
		postURL     string
		screenshots []string
		wantErr     bool
	}{
		{"hand-check with url", TaskHandCheck, PlatformFacebook, "https://facebook.com/p/1", nil, false},
		{"video-content with url", TaskVideoContent, PlatformInstagram, "https://instagram.com/p/1", nil, false},
		{"hand-check missing url", TaskHandCheck, PlatformFacebook, "", nil, true},
		{"hand-check wrong host", TaskHandCheck, PlatformFacebook, "https://twitter.com/p/1", nil, true},
		{"group-share with screenshots", TaskGroupShare, PlatformFacebook, "", screenshots, false},
		{"hype-comment no screenshots", TaskHypeComment, PlatformInstagram, "", nil, true},
		{"too many screenshots", TaskGroupShare, PlatformFacebook, "", make([]string, MaxScreenshots+1), true},
		{"exactly max screenshots", TaskGroupShare, PlatformFacebook, "", make([]string, MaxScreenshots), false},
		{"bad platform", TaskHandCheck, Platform("tiktok"), "https://tiktok.com/p/1", nil, true},
		{"bad task type", TaskType("giveaway"), PlatformFacebook, "https://facebook.com/p/1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntake(tt.taskType, tt.platform, tt.postURL, tt.screenshots)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAward(t *testing.T) {
	// URL-proof types award exactly their fixed value
	assert.NoError(t, ValidateAward(TaskHandCheck, 0, 15))
	assert.Error(t, ValidateAward(TaskHandCheck, 0, 14))
	assert.Error(t, ValidateAward(TaskHandCheck, 0, 16))
	assert.NoError(t, ValidateAward(TaskVideoContent, 0, 25))

	// Screenshot types accept 1 up to double the screenshot count
	assert.NoError(t, ValidateAward(TaskGroupShare, 4, 1))
	assert.NoError(t, ValidateAward(TaskGroupShare, 4, 8))
	assert.Error(t, ValidateAward(TaskGroupShare, 4, 9))
	assert.Error(t, ValidateAward(TaskGroupShare, 4, 0))
	assert.Error(t, ValidateAward(TaskHypeComment, 2, -1))
}

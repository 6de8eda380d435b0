package redisrepo

import "fmt"

const (
	DIARY_KEY = "diary:%d" // <diaryID>
	USER_KEY  = "user:%d"  // <userID>
)

func DiaryKey(diaryID int64) string {
	return fmt.Sprintf(DIARY_KEY, diaryID)
}

func UserKey(userID int64) string {
	return fmt.Sprintf(USER_KEY, userID)
}

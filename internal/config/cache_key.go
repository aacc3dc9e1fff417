package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RolePermissionsKey returns the cache key for a role's permission codes.
func (r *CacheKeyStruct) RolePermissionsKey(role string) string {
	return fmt.Sprintf("role:%s:permissions", role)
}

// ClassSummaryKey returns the cache key for a class's per-student conduct
// totals in one semester.
func (r *CacheKeyStruct) ClassSummaryKey(classID, semesterID int) string {
	return fmt.Sprintf("class:%d:semester:%d:summary", classID, semesterID)
}

// ClassSubmissionChannel returns the Redis PubSub channel name for live
// submission events of one class.
func (r *CacheKeyStruct) ClassSubmissionChannel(classID int) string {
	return fmt.Sprintf("class:%d:submissions", classID)
}

var CacheKey = NewCacheKeyStruct()

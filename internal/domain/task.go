package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskType is the closed set of task kinds. The Target field of a Task is
// interpreted per type: a URL for visit/other, a @handle or t.me link for the
// join types.
type TaskType string

const (
	TaskVisit       TaskType = "visit"
	TaskJoinChannel TaskType = "join_channel"
	TaskJoinBot     TaskType = "join_bot"
	TaskOther       TaskType = "other"
)

// ParseTaskType validates a raw type string against the closed enum.
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(strings.TrimSpace(s)) {
	case TaskVisit:
		return TaskVisit, nil
	case TaskJoinChannel:
		return TaskJoinChannel, nil
	case TaskJoinBot:
		return TaskJoinBot, nil
	case TaskOther:
		return TaskOther, nil
	}
	return "", fmt.Errorf("%w: unknown task type %q", ErrInvalidTaskPayload, s)
}

type Task struct {
	ID          string
	Type        TaskType
	Title       string
	Description string
	Reward      int64
	Target      string
	Available   bool
	CreatedAt   time.Time
}

// Link resolves the URL opened by the task card button. Join targets given as
// @handles are turned into t.me links.
func (t *Task) Link() string {
	target := strings.TrimSpace(t.Target)
	if target == "" {
		return ""
	}
	switch t.Type {
	case TaskJoinChannel, TaskJoinBot:
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			return target
		}
		return "https://t.me/" + strings.TrimPrefix(target, "@")
	default:
		return target
	}
}

// ChannelHandle returns the @-stripped channel username used for membership
// lookups, or "" when the target is an invite link that cannot be queried.
func (t *Task) ChannelHandle() string {
	target := strings.TrimSpace(t.Target)
	if target == "" || strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return ""
	}
	return "@" + strings.TrimPrefix(target, "@")
}

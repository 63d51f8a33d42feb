package comment

import (
	"strings"
	"time"
)

type Comment struct {
	ID        string    `yaml:"id" json:"id"`
	TaskID    string    `yaml:"task_id" json:"taskId"`
	Author    string    `yaml:"author" json:"author"`
	Text      string    `yaml:"text" json:"text"`
	CreatedAt time.Time `yaml:"created_at" json:"createdAt"`
}

// HasMention reports whether the text addresses someone with an @.
func (c *Comment) HasMention() bool {
	return strings.Contains(c.Text, "@")
}

package main

import (
	"time"

	flag "github.com/spf13/pflag"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

func (e *env) timestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timeparse.ParseTimestamp(s, e.store.Now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func duration(s string) (*timeparse.Duration, error) {
	if s == "" {
		return nil, nil
	}
	d, err := timeparse.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// changedString returns nil unless the flag was set, so updates can tell
// "clear" from "leave alone".
func changedString(fs *flag.FlagSet, name, value string) *string {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}

func changedTags(fs *flag.FlagSet, name, value string) []string {
	if !fs.Changed(name) {
		return nil
	}
	tags := model.SplitList(value)
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func taskIDFlag(s string) (model.TaskID, error) {
	if s == "" {
		return model.NoTask, nil
	}
	return model.ParseTaskID(s)
}

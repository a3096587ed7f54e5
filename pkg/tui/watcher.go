package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const debounce = 200 * time.Millisecond

// StartWatcher watches the store root for JSON changes and sends
// StoreChangedMsg to program. The returned func stops the watcher.
func StartWatcher(root string, program *tea.Program) (func(), error) {
	return watch(root, func() { program.Send(StoreChangedMsg{}) })
}

func watch(root string, notify func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if hidden(info.Name()) && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// New project, task and logs directories need their own watch.
				if event.Op&fsnotify.Create != 0 {
					info, err := os.Stat(event.Name)
					if err == nil && info.IsDir() && !hidden(info.Name()) {
						watcher.Add(event.Name)
						continue
					}
				}

				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}

				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, notify)

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}

			case <-done:
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

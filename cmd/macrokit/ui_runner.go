package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elk-cloner/proc-macro-workshop/internal/driver"
	"github.com/elk-cloner/proc-macro-workshop/internal/pipeline"
	"github.com/elk-cloner/proc-macro-workshop/internal/ui"
)

type outcome[T any] struct {
	result T
	err    error
}

// runWithUI runs work with a progress view over files. work receives opts
// with the progress sink set; the view closes when work returns.
func runWithUI[T any](title string, files []string, opts driver.Options, work func(driver.Options) (T, error)) (T, error) {
	events := make(chan pipeline.Event, 256)
	done := make(chan outcome[T], 1)

	go func() {
		withSink := opts
		withSink.Progress = pipeline.ChannelSink{Ch: events}
		res, err := work(withSink)
		done <- outcome[T]{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// drain so the worker never blocks on a closed view
	for range events {
	}
	out := <-done
	if uiErr != nil {
		return out.result, uiErr
	}
	return out.result, out.err
}

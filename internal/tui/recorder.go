package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// recorderModel is the voice sample panel embedded in the login and register
// screens. The actual audio work happens in the capture engine; this model
// only mirrors its state for rendering.
type recorderModel struct {
	sample     *models.VoiceSample
	recording  bool
	elapsed    time.Duration
	uploadMode bool
	upload     textinput.Model
	notice     string
}

func newRecorderModel() recorderModel {
	uploadInput := textinput.New()
	uploadInput.Placeholder = "/path/to/voice.wav"
	uploadInput.CharLimit = 256
	uploadInput.Width = 40

	return recorderModel{upload: uploadInput}
}

func (r recorderModel) view(min, max time.Duration) string {
	var b strings.Builder

	b.WriteString("Voice sample │ ")
	switch {
	case r.recording:
		b.WriteString(recordingStyle.Render(fmt.Sprintf("● recording %s / %s",
			r.elapsed.Round(time.Second), max)))
	case r.sample != nil && r.sample.Uploaded:
		b.WriteString(fmt.Sprintf("file %s", r.sample.FileName))
	case r.sample != nil:
		b.WriteString(fmt.Sprintf("%s recorded (%s)",
			r.sample.FileName, r.sample.Duration.Round(time.Second)))
	default:
		b.WriteString(fmt.Sprintf("none (minimum %s)", min))
	}
	b.WriteString("\n")

	if r.uploadMode {
		b.WriteString("File path    │ [")
		b.WriteString(r.upload.View())
		b.WriteString("]\n")
	}

	if r.notice != "" {
		b.WriteString(noticeStyle.Render(r.notice))
		b.WriteString("\n")
	}

	return b.String()
}

func recorderHotKeys(r recorderModel) string {
	if r.uploadMode {
		return "enter: attach file │ esc: cancel upload"
	}
	if r.recording {
		return "ctrl+r: stop recording"
	}
	return "ctrl+r: record │ ctrl+p: preview │ ctrl+u: upload file"
}

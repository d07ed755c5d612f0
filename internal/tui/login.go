// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldAnswer
)

// loginModel is the login screen state: the credential inputs, the embedded
// recorder panel, and the security-question challenge stage entered after a
// partial-success reply.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool

	// challenge is set once the server answered 206: the credentials were
	// accepted, voice verification was inconclusive, and the answer input
	// takes over the form.
	challenge bool
	question  string

	// questionSeq invalidates stale prefetch timers; only the most recent
	// typing pause on the email field may fetch the question.
	questionSeq int
	lastEmail   string

	recorder recorderModel
}

func newLoginModel(prefillEmail string) loginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 256
	emailInput.Width = 40
	emailInput.SetValue(prefillEmail)
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	answerInput := textinput.New()
	answerInput.Placeholder = "answer"
	answerInput.CharLimit = 256
	answerInput.Width = 40

	return loginModel{
		inputs:    []textinput.Model{emailInput, passwordInput, answerInput},
		recorder:  newRecorderModel(),
		lastEmail: prefillEmail,
	}
}

func (m loginModel) view(min, max time.Duration) string {
	var b strings.Builder

	if m.challenge {
		b.WriteString("Voice verification was inconclusive.\n")
		b.WriteString("Answer your security question to finish signing in:\n\n")
		b.WriteString("Question │ ")
		b.WriteString(valueOrDash(m.question))
		b.WriteString("\n")
		b.WriteString("Answer   │ [")
		b.WriteString(m.inputs[loginFieldAnswer].View())
		b.WriteString("]\n")

		if m.submitting {
			b.WriteString("\n[Verifying...]\n")
		} else {
			b.WriteString("\n[Verify]\n")
		}
		return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"),
			"enter: submit answer │ esc: back to credentials")
	}

	b.WriteString("Email    │ [")
	b.WriteString(m.inputs[loginFieldEmail].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[loginFieldPassword].View())
	b.WriteString("]\n")
	if m.question != "" {
		b.WriteString("Question │ ")
		b.WriteString(m.question)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.recorder.view(min, max))

	if m.submitting {
		b.WriteString("\n[Sign in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	hotKeys := "enter: sign in │ tab: next field │ esc: back │ " + recorderHotKeys(m.recorder)
	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), hotKeys)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package models

// LoginResponse is the JSON body of POST /api/auth/login. Message is present
// on 200, SecurityQuestion on 206, Error on 4xx.
type LoginResponse struct {
	Message          string  `json:"message,omitempty"`
	SecurityQuestion string  `json:"security_question,omitempty"`
	Similarity       float64 `json:"similarity,omitempty"`
	Error            string  `json:"error,omitempty"`
}

// QuestionResponse is the JSON body of GET /api/auth/security_question.
type QuestionResponse struct {
	SecurityQuestion string `json:"security_question"`
	Error            string `json:"error,omitempty"`
}

// VerifyResponse is the JSON body of POST /api/auth/verify_security.
type VerifyResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is the generic {"message": ...} body used by logout,
// register and the task endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

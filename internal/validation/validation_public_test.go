// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package validation_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/validation"
)

type ValidationPublicTestSuite struct {
	suite.Suite
}

func (s *ValidationPublicTestSuite) SetupSuite() {
	validation.RegisterEnum("shift_kind", "day", "night")
}

type newStaffRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Shift    string `json:"shift" validate:"required,shift_kind"`
	PIN      string `json:"pin" validate:"omitempty,len=4,numeric"`
}

type listQuery struct {
	Limit  int    `query:"limit" validate:"gte=1,lte=100"`
	Sort   string `query:"sort" validate:"omitempty,oneof=asc desc"`
	Hidden string `json:"-" validate:"max=2"`
}

func (s *ValidationPublicTestSuite) TestStruct() {
	tests := []struct {
		name   string
		input  any
		wantOK bool
		want   string
	}{
		{
			name:   "when request is valid",
			input:  newStaffRequest{Username: "alice", Shift: "night", PIN: "1234"},
			wantOK: true,
		},
		{
			name:  "when required fields missing reports each by json name",
			input: newStaffRequest{},
			want:  "username is required; shift is required",
		},
		{
			name:  "when string too short counts characters",
			input: newStaffRequest{Username: "al", Shift: "day"},
			want:  "username must be at least 3 characters",
		},
		{
			name:  "when email malformed",
			input: newStaffRequest{Username: "alice", Shift: "day", Email: "alice-at-home"},
			want:  "email must be an email address",
		},
		{
			name:  "when enum value unknown lists allowed values",
			input: newStaffRequest{Username: "alice", Shift: "weekend"},
			want:  `shift must be one of day, night, got "weekend"`,
		},
		{
			name:  "when pin wrong length",
			input: newStaffRequest{Username: "alice", Shift: "day", PIN: "12"},
			want:  "pin must be exactly 4 long",
		},
		{
			name:  "when query bound exceeded uses query name",
			input: listQuery{Limit: 500},
			want:  "limit must be at most 100",
		},
		{
			name:  "when oneof violated lists choices",
			input: listQuery{Limit: 10, Sort: "random"},
			want:  "sort must be one of asc, desc",
		},
		{
			name:  "when json name is dash falls back to field name",
			input: listQuery{Limit: 10, Hidden: "abc"},
			want:  "Hidden must be at most 2 characters",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			msg, ok := validation.Struct(tc.input)

			s.Equal(tc.wantOK, ok)
			s.Equal(tc.want, msg)
		})
	}
}

func (s *ValidationPublicTestSuite) TestVar() {
	tests := []struct {
		name   string
		value  any
		tag    string
		wantOK bool
		want   string
	}{
		{name: "when shift valid", value: "night", tag: "required,shift_kind", wantOK: true},
		{
			name:  "when shift unknown",
			value: "late",
			tag:   "shift_kind",
			want:  `must be one of day, night, got "late"`,
		},
		{name: "when empty and required", value: "", tag: "required", want: "is required"},
		{name: "when below minimum", value: 0, tag: "min=1", want: "must be at least 1"},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			msg, ok := validation.Var(tc.value, tc.tag)

			s.Equal(tc.wantOK, ok)
			s.Equal(tc.want, msg)
		})
	}
}

func (s *ValidationPublicTestSuite) TestRegisterEnumRejectsNonStrings() {
	msg, ok := validation.Var(7, "shift_kind")

	s.False(ok)
	s.Contains(msg, "must be one of day, night")
}

func (s *ValidationPublicTestSuite) TestInstanceIsShared() {
	s.Same(validation.Instance(), validation.Instance())
}

func TestValidationPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ValidationPublicTestSuite))
}

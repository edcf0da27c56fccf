package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("message wins over code", func() {
		err := &Error{Code: CodeNotFound, Message: "tenant not found"}
		s.Equal("tenant not found", err.Error())
	})

	s.Run("falls back to code", func() {
		err := &Error{Code: CodeConflict}
		s.Equal("conflict", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIs() {
	s.Run("matches by code", func() {
		s.True(errors.Is(New(CodeNotFound, "a"), &Error{Code: CodeNotFound}))
	})

	s.Run("different codes do not match", func() {
		s.False(errors.Is(New(CodeNotFound, "a"), &Error{Code: CodeInternal}))
	})

	s.Run("plain errors never match", func() {
		err := &Error{Code: CodeNotFound}
		s.False(err.Is(errors.New("not found")))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps the first domain code", func() {
		wrapped := Wrap(New(CodeNotFound, "tenant not found"), CodeInternal, "load tenant")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeNotFound, domainErr.Code)
		s.Equal("load tenant", domainErr.Message)
	})

	s.Run("applies code to plain errors", func() {
		root := errors.New("connection reset")
		wrapped := Wrap(root, CodeInternal, "store failure")

		s.True(HasCode(wrapped, CodeInternal))
		s.ErrorIs(wrapped, root)
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeValidation, CodeOf(fmt.Errorf("outer: %w", New(CodeValidation, "bad"))))
	s.Equal(CodeInternal, CodeOf(errors.New("boom")))
	s.False(HasCode(nil, CodeNotFound))
}

package battleerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/riftkeep/battlecore/battleerr"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestOverSpeed() {
	err := battleerr.OverSpeed(7, 5)

	s.Equal(battleerr.CodeOverSpeed, battleerr.GetCode(err))
	s.Equal("selection exceeds speed budget: 7 > 5", err.Error())

	meta := battleerr.GetMeta(err)
	s.Equal(7, meta["used"])
	s.Equal(5, meta["max"])
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	original := battleerr.RewindAlreadyUsed()
	wrapped := battleerr.Wrap(original, "rewind failed")

	s.Equal(battleerr.CodeRewindAlreadyUsed, battleerr.GetCode(wrapped))
	s.Contains(wrapped.Error(), "rewind failed")
	s.Contains(wrapped.Error(), "rewind already used")
	s.Equal(original, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapUnknownError() {
	original := errors.New("io failure")
	wrapped := battleerr.Wrap(original, "load failed")

	s.Equal(battleerr.CodeUnknown, battleerr.GetCode(wrapped))
	s.True(errors.Is(wrapped, original))
}

func (s *ErrorsTestSuite) TestGetCodeOnPlainError() {
	s.Equal(battleerr.CodeUnknown, battleerr.GetCode(errors.New("boom")))
}

func (s *ErrorsTestSuite) TestWrongPhase() {
	err := battleerr.WrongPhase("resolve", "select")
	s.Equal(battleerr.CodeWrongPhase, battleerr.GetCode(err))
	s.Equal("resolve", battleerr.GetMeta(err)["expected"])
}

func (s *ErrorsTestSuite) TestCatalogErrors() {
	s.Equal(battleerr.CodeMissingCard, battleerr.GetCode(battleerr.MissingCard("strike")))
	s.Equal(battleerr.CodeMissingToken, battleerr.GetCode(battleerr.MissingToken("offense")))
	s.Equal(battleerr.CodeMissingEnemy, battleerr.GetCode(battleerr.MissingEnemy("goblin")))
}

func (s *ErrorsTestSuite) TestDuplicateID() {
	err := battleerr.DuplicateID("card", "strike")
	s.Equal(battleerr.CodeDuplicateID, battleerr.GetCode(err))
	s.Equal("card", battleerr.GetMeta(err)["kind"])
	s.Equal("strike", battleerr.GetMeta(err)["id"])
}

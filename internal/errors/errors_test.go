package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"carcassonne/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "spot is occupied",
			expected: "INVALID_ARGUMENT: spot is occupied",
		},
		{
			name:     "aborted error",
			code:     errors.CodeAborted,
			message:  "tile mismatch",
			expected: "ABORTED: tile mismatch",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestIllegalAction() {
	err := errors.IllegalAction("place meeple", "PLACING")

	s.Assert().True(errors.IsIllegalAction(err))
	s.Assert().Equal("place meeple", err.Meta["action"])
	s.Assert().Equal("PLACING", err.Meta["state"])
	s.Assert().Equal(http.StatusPreconditionFailed, err.Code.HTTPStatus())
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to send tile placed")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to send tile placed", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())

	desync := errors.Desyncf("tile %s does not match %s", "Road", "RoadCurve")
	rewrapped := errors.Wrap(desync, "replay failed")
	s.Assert().True(errors.IsDesync(rewrapped))

	s.Assert().Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	inner := errors.InvalidArgument("bad frame").WithMeta("frame", 3)
	wrapped := errors.WrapWithCode(inner, errors.CodeDataLoss, "undecodable broadcast")

	s.Assert().Equal(errors.CodeDataLoss, wrapped.Code)
	s.Assert().Equal(3, wrapped.Meta["frame"])
	s.Assert().True(errors.Is(wrapped, errors.New(errors.CodeDataLoss, "")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(errors.Unavailable("down")))
	s.Assert().Equal("down", errors.GetMessage(errors.Unavailable("down")))
	s.Assert().Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

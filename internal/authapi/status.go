package authapi

import (
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is the ErrorInfo domain attached to every error status.
const ErrorDomain = "authkeeper"

// CodeForClass maps an error class onto a gRPC status code.
func CodeForClass(class string) codes.Code {
	switch class {
	case common.ClassValidation:
		return codes.InvalidArgument
	case common.ClassConflict:
		return codes.AlreadyExists
	case common.ClassInvalidCredentials, common.ClassTokenExpired, common.ClassTokenInvalid:
		return codes.Unauthenticated
	case common.ClassNotFound:
		return codes.NotFound
	case common.ClassResourceExhausted:
		return codes.ResourceExhausted
	default:
		return codes.Internal
	}
}

// StatusError converts a service error into a gRPC status error carrying
// its class as ErrorInfo.Reason. Store failures get a generic message so
// driver details stay on the server.
func StatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	class := common.ClassOf(err)
	msg := err.Error()
	if class == common.ClassStore {
		msg = "internal error"
	}

	st := status.New(CodeForClass(class), msg)
	withDetails, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: class, Domain: ErrorDomain})
	if derr != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// ClassFromStatus extracts the error class from a status error. Statuses
// without ErrorInfo fall back to a class derived from the code.
func ClassFromStatus(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return common.ClassOf(err)
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return common.ClassValidation
	case codes.AlreadyExists:
		return common.ClassConflict
	case codes.Unauthenticated:
		return common.ClassTokenInvalid
	case codes.NotFound:
		return common.ClassNotFound
	case codes.ResourceExhausted:
		return common.ClassResourceExhausted
	default:
		return common.ClassStore
	}
}

var classErrors = map[string]error{
	common.ClassValidation:         common.ErrorValidation,
	common.ClassConflict:           common.ErrorAlreadyExists,
	common.ClassInvalidCredentials: common.ErrorInvalidCredentials,
	common.ClassTokenExpired:       common.ErrTokenExpired,
	common.ClassTokenInvalid:       common.ErrInvalidToken,
	common.ClassNotFound:           common.ErrorNotFound,
	common.ClassResourceExhausted:  common.ErrPoolExhausted,
	common.ClassStore:              common.ErrorStore,
}

// ErrorFromStatus turns a status error back into the matching sentinel from
// package common, so callers can use errors.Is on either side of the wire.
func ErrorFromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	sentinel, ok := classErrors[ClassFromStatus(err)]
	if !ok {
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}

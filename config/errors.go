package config

import "github.com/jmgilman/go/errors"

func makeContext(pairs ...interface{}) map[string]interface{} {
	ctx := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if k, ok := pairs[i].(string); ok {
			ctx[k] = pairs[i+1]
		}
	}
	return ctx
}

// wrapLoadErrorWithContext wraps an error with CodeCUELoadFailed.
// Used when the configuration file cannot be read.
func wrapLoadErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUELoadFailed, message, ctx)
}

// wrapBuildErrorWithContext wraps an error with CodeCUEBuildFailed.
// Used when the configuration source does not compile.
func wrapBuildErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUEBuildFailed, message, ctx)
}

// wrapValidationErrorWithContext wraps an error with CodeCUEValidationFailed.
// Used when the configuration does not satisfy the schema.
func wrapValidationErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUEValidationFailed, message, ctx)
}

// wrapDecodeErrorWithContext wraps an error with CodeCUEDecodeFailed.
func wrapDecodeErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUEDecodeFailed, message, ctx)
}

// wrapConfigErrorWithContext wraps an error with CodeInvalidConfig.
// Used for values the schema accepts but the program cannot use.
func wrapConfigErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeInvalidConfig, message, ctx)
}

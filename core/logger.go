package core

// Logger is the app-wide logging contract. Implementations may fan out to an
// error tracker in addition to stdout.
//
// args may carry anything worth reporting alongside the message: the causing
// error, a request path, extra context maps.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

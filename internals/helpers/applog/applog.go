// Package applog writes one masked line per event and forwards errors to Rollbar when configured.
package applog

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	rollbarErrors "github.com/rollbar/rollbar-go/errors"

	helper "danceflow_backend/internals/helpers"
)

var (
	std       = log.New(os.Stderr, "", log.LstdFlags)
	rollbarOn atomic.Bool
)

// Init enables Rollbar reporting when token is non-empty.
func Init(token, env, version string) {
	if strings.TrimSpace(token) == "" {
		rollbar.SetEnabled(false)
		rollbarOn.Store(false)
		return
	}
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetCodeVersion(version)
	rollbar.SetStackTracer(rollbarErrors.StackTracer)
	rollbar.SetEnabled(true)
	rollbarOn.Store(true)
}

// Close flushes pending Rollbar items.
func Close() {
	if rollbarOn.Load() {
		rollbar.Wait()
	}
}

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// NewCorrelationID dipakai untuk error 500 supaya bisa dicari di log.
func NewCorrelationID() string {
	return uuid.NewString()
}

func Info(msg string, kv ...any) {
	std.Println(format("INFO", msg, fields(kv)))
}

func Warn(msg string, kv ...any) {
	std.Println(format("WARN", msg, fields(kv)))
}

// Error logs err plus fields; err may be nil.
func Error(msg string, err error, kv ...any) {
	f := fields(kv)
	if err != nil {
		err = scrubError(err)
		f["error"] = err.Error()
	}
	std.Println(format("ERROR", msg, f))

	if rollbarOn.Load() {
		extras := make(map[string]interface{}, len(f)+1)
		for k, v := range f {
			extras[k] = v
		}
		extras["message"] = msg
		if err != nil {
			rollbar.Error(err, extras)
		} else {
			rollbar.Error(msg, extras)
		}
	}
}

// scrubbedError membawa teks error yang sudah disamarkan; stack trace asal tetap dipakai Rollbar.
type scrubbedError struct {
	msg   string
	stack pkgerrors.StackTrace
}

func (e *scrubbedError) Error() string { return e.msg }

func (e *scrubbedError) StackTrace() pkgerrors.StackTrace { return e.stack }

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func scrubError(err error) error {
	msg := helper.ScrubText(err.Error())
	var st stackTracer
	if errors.As(err, &st) {
		return &scrubbedError{msg: msg, stack: st.StackTrace()}
	}
	return errors.New(msg)
}

// fields turns k1, v1, k2, v2 ... into a masked map. A dangling key gets "(MISSING)".
func fields(kv []any) map[string]any {
	raw := make(map[string]any, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			raw[k] = "(MISSING)"
			break
		}
		raw[k] = kv[i+1]
	}
	masked, _ := helper.MaskSensitive(raw).(map[string]any)
	return masked
}

func format(level, msg string, f map[string]any) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level)
	b.WriteString("] ")
	b.WriteString(msg)

	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fmt.Sprint(f[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(v)
	}
	return b.String()
}

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStep       = "step"
	KeyResult     = "result"
	KeyBranch     = "branch"
	KeyRemote     = "remote"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyCommit     = "commit"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func Step(name string) slog.Attr { return slog.String(KeyStep, name) }
func Result(r string) slog.Attr { return slog.String(KeyResult, r) }
func Branch(b string) slog.Attr { return slog.String(KeyBranch, b) }
func Remote(r string) slog.Attr { return slog.String(KeyRemote, r) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr { return slog.String(KeyURL, u) }
func Commit(h string) slog.Attr { return slog.String(KeyCommit, h) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func UserAgent(ua string) slog.Attr { return slog.String(KeyUserAgent, ua) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

package session

import (
	"fmt"

	"github.com/charlesren/netcli/connection"
	"github.com/charlesren/netcli/driver"
	"github.com/charlesren/netcli/parser"
	"github.com/charlesren/ylog"
)

// CommandResult 一次命令执行的完整结果
type CommandResult struct {
	Command string
	Raw     []byte        // 原始字节（含回显与提示符）
	Text    string        // 解码并规范化后的文本
	Output  string        // 剥离回显与尾部提示符后的正文
	Err     *SessionError // 分类结果；nil 表示成功
}

// Session drives one interactive CLI session against a network device.
// It owns its Transport exclusively and tracks the device's current mode.
//
// A Session is not safe for concurrent use: exactly one command may be in
// flight at a time, and invoking two operations concurrently is caller
// misuse. Independent Sessions (distinct transports) may run concurrently;
// the shared Profile is immutable.
//
// After a TIMEOUT or TRANSPORT_ERROR the device mode is indeterminate:
// re-probe with Execute or reconnect before trusting Mode().
type Session struct {
	transport connection.Transport
	profile   *driver.Profile
	exec      *executor

	mode          driver.Mode
	paginationOff bool
	busy          bool
	closed        bool
}

// Connect wraps an established, authenticated transport in a Session.
// It reads the login banner up to the first prompt, infers the starting
// mode from which prompt appeared, and, if the device lands directly in
// privileged mode, disables pagination right away.
func Connect(t connection.Transport, profile *driver.Profile) (*Session, error) {
	s := &Session{
		transport: t,
		profile:   profile,
		exec:      newExecutor(t, profile),
		mode:      driver.Mode{Kind: driver.ModeUnprivileged},
	}

	_, matched, err := s.exec.readUntil(
		profile.Prompt(driver.ModePrivileged),
		profile.Prompt(driver.ModeUnprivileged),
	)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		s.mode = driver.Mode{Kind: driver.ModePrivileged}
	}
	ylog.Infof("Session", "connected, platform=%s mode=%s", profile.Platform, s.mode)

	if s.mode.Kind == driver.ModePrivileged {
		if err := s.disablePagination(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Mode returns the device mode after the last successfully completed
// transition.
func (s *Session) Mode() driver.Mode {
	return s.mode
}

func (s *Session) Platform() driver.Platform {
	return s.profile.Platform
}

// Close terminates the session and the underlying transport.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.transport.Close()
}

func (s *Session) acquire() *SessionError {
	if s.closed {
		return NewSessionError(ErrCodeSessionClosed, "session is closed")
	}
	if s.busy {
		return NewSessionError(ErrCodeSessionBusy, "a command is already in flight")
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.busy = false
}

// Execute runs a raw command in the current mode and returns the full
// result. Vendor-rejected commands (syntax, privilege, unsupported) come
// back inside CommandResult.Err with the session still usable; transport,
// timeout and encoding failures are returned as the error value.
//
// The executor always drains output to the trailing prompt before
// classification runs, so no stray pagination bytes remain buffered after
// a classified command error.
func (s *Session) Execute(command string) (*CommandResult, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.execute(command)
}

func (s *Session) execute(command string) (*CommandResult, error) {
	prompt := s.profile.Prompt(s.mode.Kind)
	raw, _, err := s.exec.run(command, prompt)
	if err != nil {
		return nil, err
	}

	text, derr := s.profile.Encoding.Decode(raw)
	if derr != nil {
		return nil, NewSessionErrorWithCause(ErrCodeEncoding,
			"failed to decode device output", derr).AddDetail("command", command)
	}

	clean := sanitize(text)
	body := stripEcho(clean, command)
	body, _ = stripPrompt(body, prompt)

	result := &CommandResult{
		Command: command,
		Raw:     raw,
		Text:    clean,
		Output:  body,
	}
	result.Err = classify(s.profile, command, body)
	if result.Err != nil {
		ylog.Infof("Session", "command rejected: %s (%s)", command, result.Err.Code)
	}
	return result, nil
}

// disablePagination issues the platform's screen-length command once per
// session lifetime. Platforms without one skip the round trip entirely.
func (s *Session) disablePagination() error {
	if s.paginationOff {
		return nil
	}
	cmd := s.profile.Commands.DisablePagination
	if cmd == "" {
		s.paginationOff = true
		return nil
	}
	res, err := s.execute(cmd)
	if err != nil {
		return err
	}
	if res.Err != nil {
		return res.Err
	}
	s.paginationOff = true
	ylog.Debugf("Session", "pagination disabled (%s)", cmd)
	return nil
}

// Enable raises the session to privileged mode, answering the password
// prompt if the device asks for one. On success pagination is disabled
// (once per session). A failed attempt leaves the mode unchanged.
func (s *Session) Enable(password string) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if s.mode.Kind == driver.ModePrivileged {
		return nil
	}
	if s.mode.Kind != driver.ModeUnprivileged {
		return NewSessionError(ErrCodeModeTransition,
			fmt.Sprintf("cannot enable from mode %s", s.mode))
	}

	cmd, ok := s.profile.TransitionCommand(driver.ModeUnprivileged, driver.ModePrivileged)
	if !ok {
		cmd = s.profile.EnableCommand
	}
	if cmd == "" {
		return NewSessionError(ErrCodeModeTransition, "no enable command defined")
	}

	privPrompt := s.profile.Prompt(driver.ModePrivileged)
	raw, matched, err := s.exec.run(cmd, privPrompt, s.profile.PasswordPrompt)
	if err != nil {
		return s.transitionFailed(driver.ModePrivileged, raw, err)
	}
	if matched == 1 {
		// 设备要求输入口令；口令不写入日志
		if werr := s.exec.sendRaw(password + "\n"); werr != nil {
			return werr
		}
		raw, _, err = s.exec.readUntil(privPrompt)
		if err != nil {
			return s.transitionFailed(driver.ModePrivileged, raw, err)
		}
	}

	// VRP 族用户视图与特权视图提示符相同，提示符匹配不足以证明升权
	// 成功；升权被拒时设备回落到原提示符，须先按错误签名判定
	text := sanitize(s.profile.Encoding.DecodeLenient(raw))
	if cerr := classify(s.profile, cmd, text); cerr != nil {
		return NewSessionErrorWithCause(ErrCodeModeTransition,
			"enable rejected by device", cerr).
			AddDetail("classified", string(cerr.Code))
	}

	s.mode = driver.Mode{Kind: driver.ModePrivileged}
	ylog.Infof("Session", "entered privileged mode")
	return s.disablePagination()
}

// EnterConfig moves the session into configuration mode.
func (s *Session) EnterConfig() error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()
	return s.transition(driver.ModeConfiguration)
}

// ExitConfig returns from configuration to privileged mode.
func (s *Session) ExitConfig() error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()
	return s.transition(driver.ModePrivileged)
}

// EnterSubConfig enters a sub-configuration context (interface, VLAN...)
// identified by ctx, e.g. "GigabitEthernet0/1".
func (s *Session) EnterSubConfig(ctx string) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if s.mode.Kind != driver.ModeConfiguration {
		return NewSessionError(ErrCodeModeTransition,
			fmt.Sprintf("cannot enter sub-configuration from mode %s", s.mode))
	}
	cmd := fmt.Sprintf(s.profile.Commands.SubConfigEnter, ctx)
	target := s.profile.Prompt(driver.ModeSubConfiguration)
	raw, _, err := s.exec.run(cmd, target)
	if err != nil {
		return s.transitionFailed(driver.ModeSubConfiguration, raw, err)
	}
	s.mode = driver.Mode{Kind: driver.ModeSubConfiguration, Context: ctx}
	return nil
}

// ExitSubConfig returns from a sub-configuration context to
// configuration mode.
func (s *Session) ExitSubConfig() error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if s.mode.Kind != driver.ModeSubConfiguration {
		return NewSessionError(ErrCodeModeTransition,
			fmt.Sprintf("not in sub-configuration mode: %s", s.mode))
	}
	target := s.profile.Prompt(driver.ModeConfiguration)
	raw, _, err := s.exec.run(s.profile.Commands.SubConfigExit, target)
	if err != nil {
		return s.transitionFailed(driver.ModeConfiguration, raw, err)
	}
	s.mode = driver.Mode{Kind: driver.ModeConfiguration}
	return nil
}

// transition executes the table-defined command for (current, target) and
// confirms the target prompt. On prompt mismatch the mode is left exactly
// as it was: transitions are transactional.
func (s *Session) transition(to driver.ModeKind) error {
	from := s.mode.Kind
	if from == to {
		return nil
	}
	cmd, ok := s.profile.TransitionCommand(from, to)
	if !ok {
		return NewSessionError(ErrCodeModeTransition,
			fmt.Sprintf("no transition defined: %s -> %s", from, to)).
			AddDetail("from", string(from)).AddDetail("to", string(to))
	}
	raw, _, err := s.exec.run(cmd, s.profile.Prompt(to))
	if err != nil {
		return s.transitionFailed(to, raw, err)
	}
	s.mode = driver.Mode{Kind: to}
	ylog.Debugf("Session", "mode transition %s -> %s", from, to)
	return nil
}

// transitionFailed builds a MODE_TRANSITION_FAILED error, classifying the
// partial output so the caller can see why (e.g. permission denied) before
// deciding whether a retry makes sense.
func (s *Session) transitionFailed(to driver.ModeKind, raw []byte, cause error) error {
	if IsErrorCode(cause, ErrCodeTransport) {
		return cause
	}
	e := NewSessionErrorWithCause(ErrCodeModeTransition,
		fmt.Sprintf("prompt for mode %s did not appear", to), cause)
	text := s.profile.Encoding.DecodeLenient(raw)
	if cerr := classify(s.profile, "", sanitize(text)); cerr != nil {
		e.AddDetail("classified", string(cerr.Code))
	}
	return e
}

// Version runs the platform's version command and parses the banner.
func (s *Session) Version() (*parser.Version, error) {
	res, err := s.Execute(s.profile.Commands.Version)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	v, perr := parser.ParseVersion(s.profile.Platform, res.Output)
	if perr != nil {
		return nil, NewSessionErrorWithCause(ErrCodeParse,
			"failed to parse version output", perr)
	}
	return v, nil
}

// LogBuffer retrieves and parses the device log buffer.
func (s *Session) LogBuffer() ([]parser.LogEntry, error) {
	res, err := s.Execute(s.profile.Commands.LogBuffer)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	entries, perr := parser.ParseLogBuffer(s.profile.Platform, res.Output)
	if perr != nil {
		return nil, NewSessionErrorWithCause(ErrCodeParse,
			"failed to parse log buffer", perr)
	}
	return entries, nil
}

// Ping runs the platform's ping command against target and parses the
// statistics.
func (s *Session) Ping(target string) (*parser.PingResult, error) {
	res, err := s.Execute(fmt.Sprintf(s.profile.Commands.Ping, target))
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	p, perr := parser.ParsePing(s.profile.Platform, target, res.Output)
	if perr != nil {
		return nil, NewSessionErrorWithCause(ErrCodeParse,
			"failed to parse ping output", perr)
	}
	return p, nil
}

// Traceroute runs the platform's traceroute command against target and
// parses the hop list.
func (s *Session) Traceroute(target string) ([]parser.TracerouteHop, error) {
	res, err := s.Execute(fmt.Sprintf(s.profile.Commands.Traceroute, target))
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	hops, perr := parser.ParseTraceroute(s.profile.Platform, res.Output)
	if perr != nil {
		return nil, NewSessionErrorWithCause(ErrCodeParse,
			"failed to parse traceroute output", perr)
	}
	return hops, nil
}

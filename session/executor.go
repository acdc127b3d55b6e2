package session

import (
	"regexp"
	"time"

	"github.com/charlesren/netcli/connection"
	"github.com/charlesren/netcli/driver"
	"github.com/charlesren/ylog"
)

// readState 读循环状态。显式状态机便于用脚本化 transport 单测。
type readState int

const (
	stateReading readState = iota
	statePromptMatched
	statePaginationContinue
	stateTimeout
)

// eraseArtifacts 分页续页后设备发出的清行字节：退格串、回车清行、
// ANSI 擦除序列。只在续页点之后的数据头部剥离，不碰正文。退格序列
// 必须收在退格上（退格-空格-退格），避免吞掉正文行自身的前导空格。
var eraseArtifacts = regexp.MustCompile(`^(?:\x1b\[[0-9;]*[A-Za-z]|\x08[ \x08]*\x08|\x08|\r+ +\r|\r)+`)

// erasePending 剥离后仍可能是未完结清行序列的残余：纯空格（回车清行
// 的中段）或不完整的 ANSI 序列。命中时继续等待后续字节再判定。
var erasePending = regexp.MustCompile(`^(?: +| *\x1b(?:\[[0-9;]*)?)$`)

// executor 命令执行器：写入命令行，循环读取直到当前模式提示符出现，
// 期间剔除分页提示并下发续页按键。不推进模式。
type executor struct {
	transport connection.Transport
	profile   *driver.Profile
}

func newExecutor(t connection.Transport, p *driver.Profile) *executor {
	return &executor{transport: t, profile: p}
}

// run writes the command (plus line terminator) and reads until one of
// prompts matches the buffer tail. Returns the accumulated raw bytes and
// the index of the prompt that matched.
func (e *executor) run(command string, prompts ...*regexp.Regexp) ([]byte, int, error) {
	if command != "" {
		ylog.Debugf("Executor", "write command: %q", command)
		if err := e.transport.Write([]byte(command + "\n")); err != nil {
			return nil, -1, NewSessionErrorWithCause(ErrCodeTransport,
				"failed to write command", err).AddDetail("command", command)
		}
	}
	return e.readUntil(prompts...)
}

// sendRaw writes bytes without a line terminator (continuation keystrokes,
// interactive passwords are written with run instead).
func (e *executor) sendRaw(data string) error {
	if err := e.transport.Write([]byte(data)); err != nil {
		return NewSessionErrorWithCause(ErrCodeTransport, "failed to write keystroke", err)
	}
	return nil
}

// readUntil accumulates transport reads until a prompt matches the last
// line of the decoded buffer. Pagination markers are excised from the
// accumulation so they never reach the structured output; byte order of
// real content is preserved across pagination boundaries.
//
// On timeout the partial accumulation is returned alongside the error so
// callers can classify what the device did manage to say.
func (e *executor) readUntil(prompts ...*regexp.Regexp) ([]byte, int, error) {
	var acc []byte
	buf := make([]byte, 4096)
	deadline := time.Now().Add(e.profile.CommandTimeout)
	afterMore := false
	moreAt := 0

	state := stateReading
	matched := -1

	for {
		switch state {
		case stateReading:
			remain := time.Until(deadline)
			if remain <= 0 {
				state = stateTimeout
				continue
			}
			timeout := e.profile.ReadTimeout
			if remain < timeout {
				timeout = remain
			}

			n, err := e.transport.Read(buf, timeout)
			if err == connection.ErrReadTimeout {
				state = stateTimeout
				continue
			}
			if err != nil {
				return acc, -1, NewSessionErrorWithCause(ErrCodeTransport,
					"transport read failed", err)
			}

			acc = append(acc, buf[:n]...)
			if afterMore {
				// 清行序列可能分散在多次读里到达，始终对续页点之后的
				// 整段尾部剥离；剥离后若仍像未完结的序列残余则原样保留，
				// 等后续字节到齐再判定
				tail := eraseArtifacts.ReplaceAll(acc[moreAt:], nil)
				if len(tail) > 0 && !erasePending.Match(tail) {
					acc = append(acc[:moreAt], tail...)
					afterMore = false
				}
			}

			text := e.profile.Encoding.DecodeLenient(acc)
			if m := e.profile.MorePrompt.FindStringIndex(text); m != nil && m[1] == len(text) {
				// 标记为分页续页；标记字节随后从缓冲区剔除
				acc = acc[:len(acc)-(len(text)-m[0])]
				moreAt = len(acc)
				state = statePaginationContinue
				continue
			}
			line := lastLine(text)
			for i, re := range prompts {
				if re.MatchString(line) {
					matched = i
					break
				}
			}
			if matched >= 0 {
				state = statePromptMatched
			}

		case statePaginationContinue:
			ylog.Debugf("Executor", "pagination marker matched, sending continuation")
			if err := e.sendRaw(e.profile.MoreKeystroke); err != nil {
				return acc, -1, err
			}
			afterMore = true
			state = stateReading

		case statePromptMatched:
			return acc, matched, nil

		case stateTimeout:
			ylog.Warnf("Executor", "read timeout without prompt match, %d bytes buffered", len(acc))
			return acc, -1, NewSessionError(ErrCodeTimeout,
				"timeout waiting for prompt").AddDetail("buffered", len(acc))
		}
	}
}

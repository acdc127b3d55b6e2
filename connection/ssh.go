package connection

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charlesren/ylog"
	"golang.org/x/crypto/ssh"
)

// SSHConfig SSH 连接参数
type SSHConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SSHTransport 基于 x/crypto/ssh 的 Transport 实现：申请 PTY 并启动
// 远端 shell，读端由独立 goroutine 泵入 chunk 通道，以支持带超时的读。
type SSHTransport struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser

	chunks  chan []byte
	readErr chan error
	pending []byte

	closeOnce sync.Once
	closed    chan struct{}
}

// DialSSH establishes an SSH shell session against a network device.
// Authentication failure is reported distinctly so callers can map it
// onto their own taxonomy.
func DialSSH(config SSHConfig) (*SSHTransport, error) {
	if config.Port == 0 {
		config.Port = 22
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            config.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(config.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", addr, err)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ssh session: %w", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh stdin pipe: %w", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh stdout pipe: %w", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("vt100", 0, 80, modes); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh request pty: %w", err)
	}
	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh start shell: %w", err)
	}

	t := &SSHTransport{
		client:  client,
		session: session,
		stdin:   stdin,
		chunks:  make(chan []byte, 16),
		readErr: make(chan error, 1),
		closed:  make(chan struct{}),
	}
	go t.pump(stdout)

	ylog.Infof("SSHTransport", "shell session established: %s", addr)
	return t, nil
}

// pump 持续读取远端输出并泵入通道，EOF/错误写入 readErr 后退出
func (t *SSHTransport) pump(stdout io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case t.chunks <- chunk:
			case <-t.closed:
				return
			}
		}
		if err != nil {
			select {
			case t.readErr <- err:
			case <-t.closed:
			}
			return
		}
	}
}

func (t *SSHTransport) Read(p []byte, timeout time.Duration) (int, error) {
	if len(t.pending) > 0 {
		n := copy(p, t.pending)
		t.pending = t.pending[n:]
		return n, nil
	}

	// 数据优先于 EOF：远端发完数据即关闭时，先交付已到达的数据
	select {
	case chunk := <-t.chunks:
		n := copy(p, chunk)
		if n < len(chunk) {
			t.pending = chunk[n:]
		}
		return n, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case chunk := <-t.chunks:
		n := copy(p, chunk)
		if n < len(chunk) {
			t.pending = chunk[n:]
		}
		return n, nil
	case err := <-t.readErr:
		select {
		case chunk := <-t.chunks:
			// 通道里还有数据，错误留待下次读取
			t.readErr <- err
			n := copy(p, chunk)
			if n < len(chunk) {
				t.pending = chunk[n:]
			}
			return n, nil
		default:
		}
		if err == io.EOF {
			return 0, fmt.Errorf("ssh channel closed: %w", err)
		}
		return 0, err
	case <-t.closed:
		return 0, ErrClosed
	case <-timer.C:
		return 0, ErrReadTimeout
	}
}

func (t *SSHTransport) Write(p []byte) error {
	select {
	case <-t.closed:
		return ErrClosed
	default:
	}
	_, err := t.stdin.Write(p)
	return err
}

func (t *SSHTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closed)
		t.stdin.Close()
		if e := t.session.Close(); e != nil && e != io.EOF {
			err = e
		}
		if e := t.client.Close(); e != nil && err == nil {
			err = e
		}
		ylog.Debugf("SSHTransport", "transport closed")
	})
	return err
}

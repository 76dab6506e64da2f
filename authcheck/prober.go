package authcheck

import (
	"bytes"
	"errors"
	"os/exec"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// probeResult 是一次外部进程探测的最终结果。
// 三个完成信号（启动失败 / 进程退出 / 超时）恰好产生其中一个。
type probeResult struct {
	stdout   string
	stderr   string
	exitCode int
	// spawnErr 覆盖启动失败与启动后的进程级运行错误（非退出码）。
	spawnErr error
	timedOut bool
}

// processProber 拉起一个外部进程并等待它给出状态，把
// 进程退出、启动失败、墙钟超时三个并发完成源收敛为恰好一个结果。
// 收敛靠 resolved 上的 CAS：谁先置位谁赢，其余路径全部变成空操作；
// 超时路径胜出时负责强杀子进程，避免泄漏。
// 一次探测用完即弃，不跨调用保留任何状态。
type processProber struct {
	name    string
	args    []string
	timeout time.Duration
	logger  *zap.Logger

	resolved  atomic.Bool
	resultCh  chan probeResult
	killCount atomic.Int32
}

func newProcessProber(name string, args []string, timeout time.Duration, logger *zap.Logger) *processProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &processProber{
		name:     name,
		args:     args,
		timeout:  timeout,
		logger:   logger,
		resultCh: make(chan probeResult, 1),
	}
}

// resolve 尝试提交最终结果，返回本次调用是否胜出。
func (p *processProber) resolve(r probeResult) bool {
	if !p.resolved.CompareAndSwap(false, true) {
		return false
	}
	p.resultCh <- r
	return true
}

// run 阻塞到恰好一个完成信号胜出为止。
func (p *processProber) run() probeResult {
	cmd := exec.Command(p.name, p.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		p.logger.Debug("probe spawn failed",
			zap.String("command", p.name), zap.Error(err))
		p.resolve(probeResult{spawnErr: err})
		return <-p.resultCh
	}

	timer := time.AfterFunc(p.timeout, func() {
		if p.resolve(probeResult{timedOut: true}) {
			p.killCount.Add(1)
			_ = cmd.Process.Kill()
			p.logger.Warn("probe timed out, child killed",
				zap.String("command", p.name), zap.Duration("timeout", p.timeout))
		}
	})

	go func() {
		err := cmd.Wait()
		timer.Stop()

		exitCode := 0
		var spawnErr error
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			} else {
				// 启动成功但 OS 层面管理进程失败，与启动失败同等对待。
				spawnErr = err
			}
		}
		p.resolve(probeResult{
			stdout:   stdout.String(),
			stderr:   stderr.String(),
			exitCode: exitCode,
			spawnErr: spawnErr,
		})
	}()

	return <-p.resultCh
}

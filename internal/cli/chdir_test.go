package cli

import (
	"os"
	"testing"
)

// chdir 切换工作目录并在测试结束时恢复（等价于 Go 1.24 的 t.Chdir）
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("获取工作目录失败: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("切换工作目录失败: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("恢复工作目录失败: %v", err)
		}
	})
}

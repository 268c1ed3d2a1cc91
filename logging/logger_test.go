package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Init("warning", "production", dir))
	require.Equal(t, logrus.WarnLevel, Logger.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, Logger.Formatter)

	Logger.Warn("budget overspent")

	content, err := os.ReadFile(filepath.Join(dir, time.Now().Format("02_01_2006")+".log"))
	require.NoError(t, err)
	require.Contains(t, string(content), "budget overspent")
}

func TestInitDefaults(t *testing.T) {
	require.NoError(t, Init("verbose", "", ""))
	require.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, Logger.Formatter)
}

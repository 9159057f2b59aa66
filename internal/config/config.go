package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	appErrors "dainty/internal/errors"
)

const (
	KeyVariant    = "variant"
	KeyAccent     = "colors.accent"
	KeyBrighten   = "colors.process.brighten"
	KeyDesaturate = "colors.process.desaturate"

	KeyAdditionalTextContrast         = "environment.additionalTextContrast"
	KeyAdditionalBackgroundContrast   = "environment.additionalBackgroundContrast"
	KeyAdditionalScrollbarsContrast   = "environment.additionalScrollbarsContrast"
	KeyAdditionalCommentsContrast     = "environment.additionalCommentsContrast"
	KeyTransparentScrollbarContainers = "environment.transparentScrollbarContainers"
	KeyTransparentBorders             = "environment.transparentBorders"
	KeyTransparentToolWindowGrips     = "environment.transparentToolWindowGrips"

	KeyOutputDir       = "output.dir"
	KeyOutputTemplates = "output.templates"
	KeyOutputFormat    = "output.format"

	KeyHistoryEnabled = "history.enabled"
	KeyHistoryPath    = "history.path"
)

const (
	// DirName is the per-user and per-project configuration directory.
	DirName    = ".dainty"
	fileName   = "config.yaml"
	presetsDir = "presets"
	envPrefix  = "DAINTY"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
	preset            string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config and preset discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

// WithPreset layers presets/<name>.yaml (or .json) from the working
// directory above the project config.
func WithPreset(name string) Option {
	return func(cfg *initSettings) {
		cfg.preset = name
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	sections   *overrideSections
	sources    []string
	initErr    error

	// userConfigPathOverride is used by tests to override the user config path.
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < preset < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return errNotInitialized()
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// Sources lists the configuration files that were merged, lowest precedence first.
func Sources() []string {
	configMu.RLock()
	defer configMu.RUnlock()
	return append([]string(nil), sources...)
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return configError("determine working directory", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	var presetPath string
	if name := strings.TrimSpace(settings.preset); name != "" {
		path, err := findPreset(workingDir, name)
		if err != nil {
			return err
		}
		presetPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	merged := newOverrideSections()
	var loaded []string
	for _, layer := range []struct {
		label string
		path  string
	}{
		{"user config", userConfigPath},
		{"project config", projectConfigPath},
		{"preset", presetPath},
	} {
		ok, err := mergeConfigFile(v, merged, layer.path)
		if err != nil {
			return configError("load "+layer.label, err)
		}
		if ok {
			loaded = append(loaded, layer.path)
		}
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	sections = merged
	sources = loaded
	return nil
}

// mergeConfigFile layers one yaml or json file into v and into the override
// sections. It reports whether the file contributed anything.
func mergeConfigFile(v *viper.Viper, merged *overrideSections, path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user, project and preset files
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := merged.merge(data); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

func defaultUserConfigPath() (string, error) {
	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", configError("determine user home", err)
	}
	return filepath.Join(home, DirName, fileName), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, DirName, fileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", configError("", fmt.Errorf("config path %s is a directory", candidate))
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", configError("stat "+candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func findPreset(workingDir, name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", appErrors.At(appErrors.CodeConfigurationError, "preset",
			fmt.Sprintf("preset name %q must not contain path separators", name), nil)
	}
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		candidate := filepath.Join(workingDir, presetsDir, name+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", appErrors.At(appErrors.CodeConfigurationError, "preset",
		fmt.Sprintf("preset %q not found in %s", name, filepath.Join(workingDir, presetsDir)), nil)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyVariant, "dark")
	v.SetDefault(KeyAccent, "blues")
	v.SetDefault(KeyBrighten, 0)
	v.SetDefault(KeyDesaturate, 0.0)
	for _, key := range environmentKeys {
		v.SetDefault(key, false)
	}
	v.SetDefault(KeyOutputDir, "dist")
	v.SetDefault(KeyOutputTemplates, "templates")
	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryPath, "")
}

var environmentKeys = []string{
	KeyAdditionalTextContrast,
	KeyAdditionalBackgroundContrast,
	KeyAdditionalScrollbarsContrast,
	KeyAdditionalCommentsContrast,
	KeyTransparentScrollbarContainers,
	KeyTransparentBorders,
	KeyTransparentToolWindowGrips,
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, errNotInitialized()
	}
	return configInst, nil
}

func errNotInitialized() error {
	return appErrors.New(appErrors.CodeConfigurationError, "configuration not initialized", nil)
}

func configError(action string, err error) error {
	msg := err.Error()
	if action != "" {
		msg = action + ": " + msg
	}
	return appErrors.New(appErrors.CodeConfigurationError, msg, err)
}

// reset clears package state for tests.
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	sections = nil
	sources = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages and
// initializes from an empty temp directory plus opts.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }, opts ...Option) func() {
	reset()
	tmp := t.TempDir()
	userConfigPathOverride = filepath.Join(tmp, "user.yaml")
	_ = Initialize(append([]Option{WithWorkingDir(tmp)}, opts...)...)
	return reset
}

// SaveAccent persists colors.accent to the appropriate config file.
// If a project config (.dainty/config.yaml) exists, it updates that file.
// Otherwise, it updates the user config (~/.dainty/config.yaml).
// The user config directory is auto-created if needed, but project config
// directories are never auto-created. Other keys keep their spelling and order.
func SaveAccent(name string) (string, error) {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return "", configError("find config path", err)
	}

	//nolint:gosec // G304: target is the user or project config file
	data, err := os.ReadFile(targetPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", configError("read config", err)
	}
	updated, err := setScalar(data, []string{"colors", "accent"}, name)
	if err != nil {
		return "", configError("update "+targetPath, err)
	}

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return "", configError("create config directory", err)
	}
	//nolint:gosec // G306: config files are not secret
	if err := os.WriteFile(targetPath, updated, 0644); err != nil {
		return "", configError("write config", err)
	}
	return targetPath, nil
}

// findWritableConfigPath determines which config file to write to.
// Returns project config path if it exists, otherwise user config path.
func findWritableConfigPath() (string, error) {
	wd, err := os.Getwd()
	if err == nil {
		projectPath, err := findProjectConfig(wd)
		if err == nil && projectPath != "" {
			return projectPath, nil
		}
	}
	return defaultUserConfigPath()
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
	"github.com/psantana5/slabbuild/internal/pipeline"
)

var (
	cfgFile      string
	projectRoot  string
	profileName  string
	cleanFlag    bool
	buildOnly    bool
	noTests      bool
	stressTest   bool
	staticLink   bool
	jobs         int
	outputFormat string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slabbuild",
	Short: "Build, test, and run the slab allocator",
	Long: `slabbuild drives the cmake configure and build steps, publishes the
compilation database for editor tooling, and conditionally runs the unit
tests, the stress tests, and the resulting executable.

Configure and build failures abort the pipeline with the tool's own exit
status. Test failures are reported but never block running the application.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPipeline,
}

// exitError carries a specific process exit code out of a cobra RunE.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, "Error: "+ee.msg)
			}
			return ee.code
		}
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return 2
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file (default is $HOME/.slabbuild/config.yaml)")
	rootCmd.Flags().StringVar(&projectRoot, "root", ".", "project root directory")
	rootCmd.Flags().StringVar(&profileName, "config", "", "build configuration: Debug or Release (default Debug)")
	rootCmd.Flags().BoolVar(&cleanFlag, "clean", false, "clean build directory and exit")
	rootCmd.Flags().BoolVar(&buildOnly, "build-only", false, "only build, do not run tests or executable")
	rootCmd.Flags().BoolVar(&noTests, "no-tests", false, "disable building and running tests (default for Release)")
	rootCmd.Flags().BoolVar(&stressTest, "stress-test", false, "build and run stress tests")
	rootCmd.Flags().BoolVar(&staticLink, "static", false, "link libraries statically")
	rootCmd.Flags().IntVar(&jobs, "jobs", 0, "build parallelism (0 = logical CPU count)")
	rootCmd.Flags().StringVar(&outputFormat, "output", "", "summary format: table or json")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(2)
		}

		configDir := filepath.Join(home, ".slabbuild")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	viper.BindEnv("profile", "SLABBUILD_PROFILE")
	viper.BindEnv("output", "SLABBUILD_OUTPUT")
	viper.BindEnv("jobs", "SLABBUILD_JOBS")

	// Config file is optional; flags always win over it.
	_ = viper.ReadInConfig()

	if profileName == "" && viper.GetString("profile") != "" {
		profileName = viper.GetString("profile")
	}
	if outputFormat == "" && viper.GetString("output") != "" {
		outputFormat = viper.GetString("output")
	}
	if jobs == 0 && viper.GetInt("jobs") > 0 {
		jobs = viper.GetInt("jobs")
	}

	if profileName == "" {
		profileName = string(config.ProfileDebug)
	}
	if outputFormat == "" {
		outputFormat = "table"
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	profile, err := config.ParseProfile(profileName)
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}
	if outputFormat != "table" && outputFormat != "json" {
		return &exitError{code: 2, msg: fmt.Sprintf("invalid output format %q (valid: table, json)", outputFormat)}
	}

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return &exitError{code: 2, msg: fmt.Sprintf("invalid project root %q: %v", projectRoot, err)}
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return &exitError{code: 2, msg: fmt.Sprintf("project root %s is not a directory", root)}
	}

	man, err := config.LoadManifest(root)
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	opts := config.Options{
		Profile:    profile,
		Clean:      cleanFlag,
		BuildOnly:  buildOnly,
		NoTests:    noTests,
		StressTest: stressTest,
		Static:     staticLink,
		Jobs:       jobs,
	}
	bc := config.NewContext(root, opts, man)

	level := logging.INFO
	if verbose {
		level = logging.DEBUG
	}
	log := logging.NewLogger(level, false)

	p := pipeline.New(bc, execute.NewRunner(), log)
	report := p.Run(cmd.Context(), bc)

	if outputFormat == "json" {
		if err := report.WriteJSON(os.Stdout); err != nil {
			log.Error(err.Error())
		}
	} else {
		fmt.Println()
		if err := report.WriteTable(os.Stdout); err != nil {
			log.Error(err.Error())
		}
	}

	if report.ExitCode != 0 {
		// The controller already logged the fatal stage detail.
		return &exitError{code: report.ExitCode}
	}
	return nil
}

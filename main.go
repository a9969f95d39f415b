package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/scan2earn/panel/config"
	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/logger"
	"github.com/scan2earn/panel/web"
	"github.com/scan2earn/panel/web/global"
	"github.com/scan2earn/panel/web/service"
)

func initDB() error {
	return database.InitDB(config.GetDatabaseConfig())
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	if err := initDB(); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	global.SetWebServer(server)
	err := server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			global.SetWebServer(server)
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close db err:", err)
			}
			return
		}
	}
}

func resetSetting() {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	err := settingService.ResetSettings()
	if err != nil {
		fmt.Println("reset setting failed:", err)
	} else {
		fmt.Println("reset setting success")
	}
}

func showSetting() {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	allSetting, err := settingService.GetAllSetting()
	if err != nil {
		fmt.Println("get settings failed:", err)
		return
	}
	fmt.Println("current panel settings as follows:")
	fmt.Println("listen:", allSetting.WebListen)
	fmt.Println("port:", allSetting.WebPort)
	fmt.Println("base path:", allSetting.WebBasePath)
	fmt.Println("session max age (minutes):", allSetting.SessionMaxAge)
	fmt.Println("theme:", allSetting.Theme)
	fmt.Println("trust scan points:", allSetting.TrustScanPoints)
}

func updateSetting(port int, resetAdminPassword string) {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}

	if port > 0 {
		err := settingService.SetPort(port)
		if err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}
	if resetAdminPassword != "" {
		userService := service.UserService{}
		err := userService.ResetPassword(model.MainAdminId, resetAdminPassword, resetAdminPassword)
		if err != nil {
			fmt.Println("reset admin password failed:", err)
		} else {
			fmt.Println("reset admin password success")
		}
	}
}

func seedBins() {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}

	if err := database.SeedBins(); err != nil {
		fmt.Println("seed bins failed:", err)
	} else {
		fmt.Println("seed bins success")
	}
}

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: "scan2earn",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Seed the default bins",
		Run: func(cmd *cobra.Command, args []string) {
			seedBins()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Set settings",
	}

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings",
		Run: func(cmd *cobra.Command, args []string) {
			resetSetting()
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetInt("port")
			password, _ := cmd.Flags().GetString("resetAdminPassword")
			updateSetting(port, password)
		},
	}

	updateCmd.Flags().Int("port", 0, "set panel port")
	updateCmd.Flags().String("resetAdminPassword", "", "reset the main admin password")

	settingCmd.AddCommand(resetCmd, showCmd, updateCmd)

	rootCmd.AddCommand(runCmd, seedCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

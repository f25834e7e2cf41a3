package main

import (
	"github.com/playgrid/playgrid/config"
	"github.com/playgrid/playgrid/controllers"
	"github.com/playgrid/playgrid/models"
	"github.com/playgrid/playgrid/routes"
	"github.com/playgrid/playgrid/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.CheckinRecord{},
		&models.Post{},
		&models.Comment{},
		&models.ShopItem{},
		&models.Purchase{},
		&models.PageView{},
	)

	controllers.SeedShopItems(db)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("starting server on port %s", cfg.AppPort)
	if err := utils.RunServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

package main

import "github.com/freshmarket/assistant/catalog"

// Demo catalog for running the assistant without a database.
var (
	demoCategories = []catalog.Category{
		{Id: "c1", Name: "Mevalar"},
		{Id: "c2", Name: "Sabzavotlar"},
		{Id: "c3", Name: "Sut mahsulotlari"},
		{Id: "c4", Name: "Non mahsulotlari"},
	}

	demoProducts = []catalog.Product{
		{Id: "p1", Name: "Olma", Description: "Shirin qizil olma", Price: "15000", Stock: 100, Unit: "kg", CategoryId: "c1"},
		{Id: "p2", Name: "Banan", Description: "Ekvador banani", Price: "25000", Stock: 80, Unit: "kg", CategoryId: "c1"},
		{Id: "p3", Name: "Uzum (Qora)", Description: "Shirin qora uzum", Price: "32000", Stock: 40, Unit: "kg", CategoryId: "c1"},
		{Id: "p4", Name: "Pomidor", Description: "Issiqxona pomidori", Price: "12000", Stock: 120, Unit: "kg", CategoryId: "c2"},
		{Id: "p5", Name: "Bodring", Description: "Yangi uzilgan bodring", Price: "10000", Stock: 90, Unit: "kg", CategoryId: "c2"},
		{Id: "p6", Name: "Sut", Description: "Pasterizatsiya qilingan sut, 1 litr", Price: "14000", Stock: 60, Unit: "dona", CategoryId: "c3"},
		{Id: "p7", Name: "Qatiq", Description: "Uy qatig'i, 0.5 litr", Price: "11000", Stock: 45, Unit: "dona", CategoryId: "c3"},
		{Id: "p8", Name: "Non", Description: "Tandir noni", Price: "6000", Stock: 200, Unit: "dona", CategoryId: "c4"},
		{Id: "p9", Name: "Guruch", Description: "Lazer guruch", Price: "28000", Stock: 150, Unit: "kg"},
	}
)

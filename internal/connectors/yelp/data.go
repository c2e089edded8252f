package yelp

import "github.com/hopwise/hopwise/internal/connectors/listings"

var table = listings.Table{
	"Italian": {
		{Name: "Carbone", Rating: 4.5, Price: "$$$$", Reviews: 1200},
		{Name: "Lilia", Rating: 4.6, Price: "$$$", Reviews: 890},
		{Name: "Via Carota", Rating: 4.4, Price: "$$$", Reviews: 1450},
		{Name: "L'Artusi", Rating: 4.3, Price: "$$$", Reviews: 980},
		{Name: "Rubirosa", Rating: 4.5, Price: "$$", Reviews: 2100},
		{Name: "Marea", Rating: 4.6, Price: "$$$$", Reviews: 756},
		{Name: "Il Mulino", Rating: 4.2, Price: "$$$$", Reviews: 890},
		{Name: "Osteria Morini", Rating: 4.3, Price: "$$$", Reviews: 670},
	},
	"Japanese": {
		{Name: "Sushi Nakazawa", Rating: 4.7, Price: "$$$$", Reviews: 890},
		{Name: "Ippudo", Rating: 4.4, Price: "$$", Reviews: 3200},
		{Name: "Totto Ramen", Rating: 4.3, Price: "$", Reviews: 2890},
		{Name: "Yakitori Totto", Rating: 4.5, Price: "$$", Reviews: 1100},
		{Name: "Ichiran", Rating: 4.2, Price: "$$", Reviews: 4500},
		{Name: "Blue Ribbon Sushi", Rating: 4.4, Price: "$$$", Reviews: 1230},
	},
	"Chinese": {
		{Name: "Joe's Shanghai", Rating: 4.3, Price: "$$", Reviews: 3400},
		{Name: "Nom Wah Tea Parlor", Rating: 4.2, Price: "$", Reviews: 2890},
		{Name: "Hwa Yuan", Rating: 4.4, Price: "$$", Reviews: 890},
		{Name: "RedFarm", Rating: 4.5, Price: "$$$", Reviews: 1670},
		{Name: "Birds of a Feather", Rating: 4.6, Price: "$$", Reviews: 450},
	},
	"Mexican": {
		{Name: "Los Tacos No. 1", Rating: 4.6, Price: "$", Reviews: 5600},
		{Name: "Cosme", Rating: 4.4, Price: "$$$", Reviews: 1230},
		{Name: "Empellón", Rating: 4.3, Price: "$$$", Reviews: 890},
		{Name: "Los Mariscos", Rating: 4.5, Price: "$", Reviews: 2100},
		{Name: "Taco Mix", Rating: 4.2, Price: "$", Reviews: 1890},
	},
	"American": {
		{Name: "The Smith", Rating: 4.2, Price: "$$", Reviews: 4200},
		{Name: "Gramercy Tavern", Rating: 4.6, Price: "$$$$", Reviews: 2100},
		{Name: "Blue Hill", Rating: 4.7, Price: "$$$$", Reviews: 890},
		{Name: "Shake Shack", Rating: 4.3, Price: "$", Reviews: 8900},
		{Name: "Five Guys", Rating: 4.1, Price: "$", Reviews: 3400},
	},
	"Thai": {
		{Name: "Uncle Boons", Rating: 4.5, Price: "$$", Reviews: 1200},
		{Name: "Somtum Der", Rating: 4.4, Price: "$$", Reviews: 980},
		{Name: "Fish Cheeks", Rating: 4.6, Price: "$$$", Reviews: 670},
		{Name: "Ayada Thai", Rating: 4.5, Price: "$", Reviews: 2300},
	},
	"Indian": {
		{Name: "Junoon", Rating: 4.4, Price: "$$$", Reviews: 890},
		{Name: "Tamarind", Rating: 4.3, Price: "$$$", Reviews: 1100},
		{Name: "Dhamaka", Rating: 4.6, Price: "$$", Reviews: 560},
		{Name: "Adda", Rating: 4.5, Price: "$$", Reviews: 780},
	},
	"French": {
		{Name: "Le Bernardin", Rating: 4.8, Price: "$$$$", Reviews: 1890},
		{Name: "Daniel", Rating: 4.6, Price: "$$$$", Reviews: 1200},
		{Name: "Balthazar", Rating: 4.3, Price: "$$$", Reviews: 3400},
		{Name: "Café Boulud", Rating: 4.4, Price: "$$$", Reviews: 890},
	},
}

var (
	avenues       = []string{"Broadway", "Madison Ave", "Park Ave", "5th Ave", "Lexington Ave", "3rd Ave", "Amsterdam Ave"}
	crossStreets  = []string{"14th St", "23rd St", "34th St", "42nd St", "50th St", "59th St", "72nd St"}
	phoneAreaCode = []string{"212", "646", "917", "347"}
)

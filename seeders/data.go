package seeders

import (
	"time"

	"github.com/aarondl/null/v8"

	"org-registry/internal/entities"
)

func birthDate(y int, m time.Month, d int) null.Time {
	return null.TimeFrom(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Ключи фиксированы, повторный запуск перезаписывает те же записи.
var organizationsData = []entities.Organization{
	{
		ID:                 1,
		FullName:           null.StringFrom("Общество с ограниченной ответственностью «Ромашка»"),
		ShortName:          null.StringFrom("ООО «Ромашка»"),
		INN:                null.StringFrom("7701234567"),
		OGRN:               null.StringFrom("1027700000001"),
		PostalAddress:      null.StringFrom("101000, г. Москва, ул. Мясницкая, д. 1"),
		LegalAddress:       null.StringFrom("101000, г. Москва, ул. Мясницкая, д. 1"),
		DirectorLastName:   null.StringFrom("Иванов"),
		DirectorFirstName:  null.StringFrom("Иван"),
		DirectorMiddleName: null.StringFrom("Петрович"),
		DirectorBirthDate:  birthDate(1972, time.March, 14),
		Branches: []entities.Branch{
			{
				ID:                 101,
				Name:               null.StringFrom("Филиал «Северный»"),
				PostalAddress:      null.StringFrom("183038, г. Мурманск, пр. Ленина, д. 10"),
				DirectorLastName:   null.StringFrom("Смирнова"),
				DirectorFirstName:  null.StringFrom("Анна"),
				DirectorMiddleName: null.StringFrom("Сергеевна"),
				DirectorBirthDate:  birthDate(1985, time.July, 2),
			},
			{
				ID:               102,
				Name:             null.StringFrom("Филиал «Южный»"),
				PostalAddress:    null.StringFrom("350000, г. Краснодар, ул. Красная, д. 5"),
				DirectorLastName: null.StringFrom("Кузнецов"),
			},
		},
	},
	{
		ID:                2,
		FullName:          null.StringFrom("Акционерное общество «Вектор»"),
		ShortName:         null.StringFrom("АО «Вектор»"),
		INN:               null.StringFrom("7812345678"),
		OGRN:              null.StringFrom("1037800000002"),
		LegalAddress:      null.StringFrom("190000, г. Санкт-Петербург, Невский пр., д. 20"),
		DirectorLastName:  null.StringFrom("Петрова"),
		DirectorFirstName: null.StringFrom("Мария"),
		Branches: []entities.Branch{
			{
				ID:            201,
				Name:          null.StringFrom("Представительство в Казани"),
				PostalAddress: null.StringFrom("420111, г. Казань, ул. Баумана, д. 3"),
			},
		},
	},
	{
		ID:        3,
		ShortName: null.StringFrom("ИП Сидоров"),
		INN:       null.StringFrom("500100732259"),
	},
}

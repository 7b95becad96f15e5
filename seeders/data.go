package seeders

var projectsData = []struct {
	Name        string
	WSProjectID string
	Sections    []string
}{
	{Name: "ЖК «Северный квартал»", WSProjectID: "1001", Sections: []string{"АР", "КЖ", "ОВ", "ВК", "ЭОМ"}},
	{Name: "Бизнес-центр «Орбита»", WSProjectID: "1002", Sections: []string{"АР", "КР", "ОВ", "СС"}},
	{Name: "Школа на 1100 мест", WSProjectID: "1003", Sections: []string{"АР", "КЖ", "ТХ"}},
}

var digestData = []struct {
	ProjectID           int64
	ProjectName         string
	ProjectManager      string
	ProjectManagerEmail string
	DaysAgo             int
	Text                string
}{
	{1001, "ЖК «Северный квартал»", "Иванов Сергей", "ivanov@eneca.work", 0, "## Итоги дня\n\n- Выдано задание смежникам по разделу ОВ\n- Закрыт раздел ВК"},
	{1001, "ЖК «Северный квартал»", "Иванов Сергей", "ivanov@eneca.work", 1, "## Итоги дня\n\n- Согласованы планировки 3-го этажа"},
	{1002, "Бизнес-центр «Орбита»", "Петрова Анна", "petrova@eneca.work", 0, "## Итоги дня\n\n- Передано задание в КР"},
}

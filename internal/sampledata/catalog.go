package sampledata

// weighted is a categorical value with its relative weight.
type weighted[T any] struct {
	value  T
	weight float64
}

var eventNames = []string{
	"RECYCLE for LIFE WE CAN RUN FUND FOR LEGS",
	"วิ่งให้โอกาส 2024 สร้างหัวใจให้มีรอยยิ้ม",
	"TMC RUN FOR CHILDREN",
	"Black&White and Run 2024",
	"The Bridge Family Run @ มินิมาราธอน",
	"LAGUNA PHUKET MARATHON 2024",
	"65 ปี UNT ROCK AND RUN 2024",
	"Coffee Run 2024",
	"SAMSEN SPACE RUN 2024",
	"Run for the Ocean by KUFA #3",
}

var ticketTypes = []string{
	"Early Bird", "Regular", "VIP", "Student", "Mini Marathon", "Super Half Marathon",
}

var ticketPrices = []weighted[int]{
	{400, 0.10}, {500, 0.20}, {600, 0.15}, {700, 0.15}, {800, 0.10},
	{1000, 0.10}, {1200, 0.10}, {1500, 0.05}, {2000, 0.05},
}

var genders = []weighted[string]{
	{"male", 0.55}, {"female", 0.45},
}

var provinces = []weighted[string]{
	{"Bangkok", 0.60}, {"Phuket", 0.10}, {"Chiang Mai", 0.10}, {"Khon Kaen", 0.05},
	{"Surat Thani", 0.05}, {"Chonburi", 0.05}, {"Nonthaburi", 0.05},
}

var virtual = []weighted[string]{
	{"True", 0.15}, {"False", 0.85},
}

var shirtTypes = []string{
	"Short Sleeves", "Sleeveless", "Tech Tee", "Short Sleeves (Black)", "Adult's short sleeve shirt",
}

var shirtSizes = []string{
	`S : chest 36"`, `M : chest 38"`, `L : chest 40"`, `XL : chest 42"`, `2XL : chest 44"`, `3XL : chest 46"`,
}

var cities = []string{
	"Bangkok", "Phuket City", "Chiang Mai", "Hat Yai", "Pattaya", "Khon Kaen",
}

package food

// FoodName is one distinct food in list and search results.
type FoodName struct {
	ID       int64  `json:"id"`
	FoodName string `json:"food_name"`
}

// Food is the nutrient detail of one serving. Nutrients are nil when the
// source data has no value.
type Food struct {
	ID            int64    `json:"id"`
	FoodName      string   `json:"food_name"`
	EnergyKcal    *float64 `json:"energy_kcal"`
	CarbohydrateG *float64 `json:"carbohydrate_g"`
	ProteinG      *float64 `json:"protein_g"`
	FatG          *float64 `json:"fat_g"`
	SugarG        *float64 `json:"sugar_g"`
	SodiumMg      *float64 `json:"sodium_mg"`
	CalciumMg     *float64 `json:"calcium_mg"`
	IronMg        *float64 `json:"iron_mg"`
	PotassiumMg   *float64 `json:"potassium_mg"`
	VitaminAUg    *float64 `json:"vitamin_a_ug"`
	VitaminCMg    *float64 `json:"vitamin_c_mg"`
	VitaminDUg    *float64 `json:"vitamin_d_ug"`
	CholesterolMg *float64 `json:"cholesterol_mg"`
	SaturatedFatG *float64 `json:"saturated_fat_g"`
	TransFatG     *float64 `json:"trans_fat_g"`
}

// Package personas содержит двадцать демо-пользователей магазина.
// Один и тот же набор используется всеми сервисами: gateway подставляет
// случайную персону в логины и чекауты, user-service отдаёт профили
package personas

import "math/rand"

// Persona демо-пользователь
type Persona struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// All полный набор персон, ключи usr_001..usr_020.
// Порядок фиксирован, срез не мутировать
var All = []Persona{
	{Key: "usr_001", Name: "Luna Darksworth", Email: "luna@staylightly.io"},
	{Key: "usr_002", Name: "Lance Dimly", Email: "lance@darklaunchly.com"},
	{Key: "usr_003", Name: "Darcy Launch", Email: "darcy@lunchdarkly.net"},
	{Key: "usr_004", Name: "Larry Duskman", Email: "larry@launchdorkly.io"},
	{Key: "usr_005", Name: "Lydia Twilight", Email: "lydia@dimlylaunch.com"},
	{Key: "usr_006", Name: "Drake Moonson", Email: "drake@launchbrightly.io"},
	{Key: "usr_007", Name: "Dawn Flagworth", Email: "dawn@toggledarkly.com"},
	{Key: "usr_008", Name: "Felix Feature", Email: "felix@flaglaunchly.io"},
	{Key: "usr_009", Name: "Sage Rollout", Email: "sage@rolldarkly.net"},
	{Key: "usr_010", Name: "Nova Experiment", Email: "nova@launchsoftly.io"},
	{Key: "usr_011", Name: "River Toggle", Email: "river@darklylaunch.com"},
	{Key: "usr_012", Name: "Stella Variant", Email: "stella@launchquickly.io"},
	{Key: "usr_013", Name: "Atlas Segment", Email: "atlas@lightlylaunch.net"},
	{Key: "usr_014", Name: "Ivy Targeting", Email: "ivy@launchsnarkly.com"},
	{Key: "usr_015", Name: "Max Context", Email: "max@launchdimly.io"},
	{Key: "usr_016", Name: "Zara Percentage", Email: "zara@darklaunchery.net"},
	{Key: "usr_017", Name: "Quinn Prerequisite", Email: "quinn@launchduskly.com"},
	{Key: "usr_018", Name: "Blake Fallthrough", Email: "blake@dawnlaunchly.io"},
	{Key: "usr_019", Name: "Morgan Targeting", Email: "morgan@launchdaily.net"},
	{Key: "usr_020", Name: "Casey Killswitch", Email: "casey@featureflagly.com"},
}

// Random возвращает случайную персону
func Random() Persona {
	return All[rand.Intn(len(All))]
}

// ByKey ищет персону по ключу
func ByKey(key string) (Persona, bool) {
	for _, p := range All {
		if p.Key == key {
			return p, true
		}
	}
	return Persona{}, false
}

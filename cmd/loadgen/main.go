// Package main содержит loadgen - генератор покупательского трафика для
// витрины GoShopSim.
//
// Каждая сессия проходит по магазину так, как это делал бы живой
// покупатель: главная страница, каталог, поиск, логин, личный кабинет,
// чекаут и немного финального брожения по витрине. Все запросы идут
// через публичный API gateway обычным HTTP клиентом, поэтому сбои,
// которые инжектируют сервисы, loadgen видит как ошибочные статусы -
// он их считает, но никогда не повторяет запрос.
//
// Параметры задаются флагами:
//   - --gateway (адрес gateway, по умолчанию http://localhost:5000)
//   - --sessions-per-minute (темп запуска сессий)
//   - --duration (сколько работать; 0 - до Ctrl+C)
//   - --seed (зерно генератора для воспроизводимых прогонов)
package main

func main() {
	Execute()
}

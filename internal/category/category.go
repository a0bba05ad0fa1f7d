package category

import "strings"

type ID string

const (
	Comida          ID = "comida"
	Bebidas         ID = "bebidas"
	Transporte      ID = "transporte"
	Antojos         ID = "antojos"
	Entretenimiento ID = "entretenimiento"
	Otros           ID = "otros"
)

type Category struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var catalog = []Category{
	{ID: Comida, Label: "Comida", Emoji: "🍔", Color: "#FF6B6B"},
	{ID: Bebidas, Label: "Bebidas", Emoji: "☕", Color: "#4ECDC4"},
	{ID: Transporte, Label: "Transporte", Emoji: "🚌", Color: "#45B7D1"},
	{ID: Antojos, Label: "Antojos", Emoji: "🍫", Color: "#96CEB4"},
	{ID: Entretenimiento, Label: "Entretenimiento", Emoji: "🎮", Color: "#DDA0DD"},
	{ID: Otros, Label: "Otros", Emoji: "📦", Color: "#778899"},
}

// Порядок категорий фиксирован: при выводе категории выигрывает первая,
// чье ключевое слово встретилось в описании.
var keywords = map[ID][]string{
	Comida: {
		"almuerzo", "desayuno", "cena", "hamburguesa", "pizza", "sandwich",
		"sándwich", "arepa", "empanada", "pollo", "arroz", "restaurante",
		"comida", "almorzar", "comer", "mcdonalds", "mcdonald", "burger",
		"subway", "kfc", "dominos", "papas", "ensalada", "sopa", "bandeja",
		"corrientazo", "menu", "menú", "plato", "asado", "parrilla", "sushi",
		"tacos", "burrito", "wrap", "pan", "panadería", "panaderia",
	},
	Bebidas: {
		"café", "cafe", "tinto", "cappuccino", "latte", "espresso", "te", "té",
		"jugo", "gaseosa", "coca", "pepsi", "sprite", "agua", "botella",
		"cerveza", "bebida", "refresco", "soda", "malteada", "batido",
		"smoothie", "starbucks", "juan valdez", "oma", "dunkin", "limonada",
		"aromática", "aromatica", "chocolate", "milo", "energizante", "monster",
		"red bull", "gatorade",
	},
	Transporte: {
		"uber", "didi", "cabify", "taxi", "bus", "buseta", "transmilenio",
		"metro", "mio", "sitp", "transporte", "gasolina", "parqueadero",
		"parking", "peaje", "pasaje", "colectivo", "bici", "bicicleta",
		"rappi", "indriver", "beat", "picap", "moto", "viaje", "flota",
	},
	Antojos: {
		"snack", "papitas", "chocolatina", "dulce", "golosina", "gomitas",
		"helado", "postre", "galletas", "galleta", "brownie", "torta",
		"pastel", "donut", "dona", "churro", "chitos", "doritos", "cheetos",
		"mani", "maní", "antojo", "mecato", "paquete", "chicle", "mentas",
		"bon bon", "colombina", "jet", "nucita", "wafer", "chocoramo",
		"ponqué", "ponque", "oblea", "paleta", "cono",
	},
	Entretenimiento: {
		"netflix", "spotify", "cine", "película", "pelicula", "juego",
		"videojuego", "steam", "playstation", "xbox", "nintendo", "boleta",
		"concierto", "teatro", "museo", "parque", "diversión", "diversion",
		"fiesta", "cover", "entrada", "karaoke", "boliche", "bowling",
		"escape room", "arcade", "youtube", "twitch", "prime", "hbo",
		"disney", "amazon", "suscripción", "suscripcion", "app", "membresía",
	},
}

// All возвращает полный каталог категорий в порядке объявления.
func All() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// Get возвращает категорию по идентификатору, для неизвестного — Otros.
func Get(id ID) Category {
	for _, c := range catalog {
		if c.ID == id {
			return c
		}
	}
	return catalog[len(catalog)-1]
}

// Valid сообщает, входит ли идентификатор в каталог.
func Valid(id ID) bool {
	for _, c := range catalog {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Infer подбирает категорию по описанию расхода: описание приводится к
// нижнему регистру, категории проверяются в порядке каталога, внутри
// категории ищется вхождение любого ключевого слова как подстроки.
// Если совпадений нет, возвращается Otros.
func Infer(concept string) ID {
	normalized := strings.ToLower(strings.TrimSpace(concept))
	if normalized == "" {
		return Otros
	}

	for _, c := range catalog {
		if c.ID == Otros {
			continue
		}
		for _, kw := range keywords[c.ID] {
			if strings.Contains(normalized, kw) {
				return c.ID
			}
		}
	}

	return Otros
}

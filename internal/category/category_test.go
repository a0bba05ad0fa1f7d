package category

import "testing"

// TestInfer проверяет подбор категории по ключевым словам.
func TestInfer(t *testing.T) {
	cases := []struct {
		concept string
		want    ID
	}{
		{"Almuerzo", Comida},
		{"Uber a casa", Transporte},
		{"dinero a mamá", Otros},
		{"Café con leche", Bebidas},
		{"red bull en la tienda", Bebidas},
		{"Netflix mensual", Entretenimiento},
		{"chocolatina jet", Antojos},
		{"  PIZZA grande  ", Comida},
	}

	for _, tc := range cases {
		if got := Infer(tc.concept); got != tc.want {
			t.Errorf("Infer(%q) = %s, want %s", tc.concept, got, tc.want)
		}
	}
}

// TestInferEmpty проверяет запасную категорию для пустого описания.
func TestInferEmpty(t *testing.T) {
	if got := Infer(""); got != Otros {
		t.Fatalf("expected otros, got %s", got)
	}
	if got := Infer("   "); got != Otros {
		t.Fatalf("expected otros for blank input, got %s", got)
	}
}

// TestInferFirstCategoryWins проверяет, что выигрывает первая категория каталога.
func TestInferFirstCategoryWins(t *testing.T) {
	// "jugo" — ключ bebidas, "chocolatina" — ключ antojos; bebidas идет
	// раньше в каталоге и должна выиграть.
	if got := Infer("jugo de chocolatina"); got != Bebidas {
		t.Fatalf("expected bebidas to win by catalog order, got %s", got)
	}
}

// TestInferDeterministic проверяет стабильность результата между вызовами.
func TestInferDeterministic(t *testing.T) {
	first := Infer("empanada de pollo")
	for i := 0; i < 10; i++ {
		if got := Infer("empanada de pollo"); got != first {
			t.Fatalf("expected %s on every call, got %s", first, got)
		}
	}
}

// TestValid проверяет принадлежность идентификатора каталогу.
func TestValid(t *testing.T) {
	if !Valid(Comida) {
		t.Fatal("expected comida to be valid")
	}
	if Valid("mascotas") {
		t.Fatal("expected unknown id to be invalid")
	}
}

// TestAllCatalogOrder проверяет состав и порядок каталога.
func TestAllCatalogOrder(t *testing.T) {
	all := All()
	want := []ID{Comida, Bebidas, Transporte, Antojos, Entretenimiento, Otros}
	if len(all) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("expected %s at position %d, got %s", id, i, all[i].ID)
		}
	}
}

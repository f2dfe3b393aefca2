// Package format prints Apex source snippets in a canonical layout.
//
// Назначение: форматирование фрагментов Apex-кода (то, что живёт внутри
// {@code ...} и анонимные скрипты .apex) с двумя точками входа парсера:
// "anonymous" (операторы и члены класса) и "apex" (объявления типов).
// Каждый /** */ комментарий по пути отдаётся CommentHook.
// Не делает: перенос длинных выражений по ширине, раскладку литералов коллекций.
// Зависимости: internal/lexer, internal/token, internal/source, internal/diag, internal/config.
package format

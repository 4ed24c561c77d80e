// Package docs Bus Alert API.
//
// 버스 도착 알림 서비스 API. 국가 대중교통 정보 API(TAGO)와 서울/경기 BIS를
// 묶어 실시간 버스 도착 정보를 정규화하고, 정류장까지의 도보 시간을 반영해
// 출발 시점을 계산합니다.
//
// 주요 기능:
// - 좌표 기반 서비스 지역(도시) 판별
// - 정류장 이름/근접 검색
// - 노선별 도착 정보 집계 (1·2번째 버스, 저상버스 여부)
// - 도보 경로 추정과 출발 시점 계산
// - 즐겨찾기, 알림 이력, 설정 관리
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
